package seed

import (
	"log"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Run fills the stores with the demo dataset: the staff roster, the menu,
// eight tables, and the default kitchen/bar routing policy.
func Run(users *store.UserStore, menu *store.MenuStore, tables *store.TableStore, routing *store.RoutingStore) error {
	if err := seedUsers(users); err != nil {
		return err
	}
	seedMenu(menu)
	seedTables(tables)
	if err := seedRouting(routing); err != nil {
		return err
	}
	log.Println("Seed completed successfully")
	return nil
}

func seedUsers(users *store.UserStore) error {
	// Default password for the admin account. Change immediately in production.
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	log.Println("WARNING: Using default admin password 'admin'. Change immediately in production!")

	roster := []model.User{
		{Username: "admin", FullName: "Admin User", Role: enum.RoleAdmin, HashedPassword: string(hashed)},
		{Username: "john", FullName: "John Waiter", Role: enum.RoleWaiter, Pin: "1111"},
		{Username: "jane", FullName: "Jane Waiter", Role: enum.RoleWaiter, Pin: "2222"},
		{Username: "kitchen", FullName: "Kitchen Station", Role: enum.RoleKitchen, Pin: "3333"},
		{Username: "bar", FullName: "Bar Station", Role: enum.RoleBar, Pin: "4444"},
	}
	for _, u := range roster {
		created := users.Create(u)
		log.Printf("Created user '%s' (ID: %s)", created.Username, created.ID)
	}
	return nil
}

func seedMenu(menu *store.MenuStore) {
	dishes := []model.Dish{
		{
			Name:        model.LocalizedString{En: "Margherita Pizza", Ar: "بيتزا مارغريتا", It: "Pizza Margherita"},
			Description: model.LocalizedString{En: "Classic pizza with tomato, mozzarella, and basil.", Ar: "بيتزا كلاسيكية بالطماطم والموزاريلا والريحان.", It: "Pizza classica con pomodoro, mozzarella e basilico."},
			Price:       decimal.RequireFromString("12.99"),
			Category:    "Main Course",
			ImageURL:    "https://picsum.photos/seed/pizza/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Spaghetti Carbonara", Ar: "سباغيتي كاربونارا", It: "Spaghetti alla Carbonara"},
			Description: model.LocalizedString{En: "Pasta with eggs, cheese, pancetta, and pepper.", Ar: "معكرونة بالبيض والجبن والبانسيتا والفلفل.", It: "Pasta con uova, formaggio, pancetta e pepe."},
			Price:       decimal.RequireFromString("15.50"),
			Category:    "Main Course",
			ImageURL:    "https://picsum.photos/seed/carbonara/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Caesar Salad", Ar: "سلطة سيزر", It: "Insalata Caesar"},
			Description: model.LocalizedString{En: "Romaine lettuce and croutons with Caesar dressing.", Ar: "خس روماني وخبز محمص مع صلصة سيزر.", It: "Lattuga romana e crostini con salsa Caesar."},
			Price:       decimal.RequireFromString("9.75"),
			Category:    "Appetizer",
			ImageURL:    "https://picsum.photos/seed/salad/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Tiramisu", Ar: "تيراميسو", It: "Tiramisù"},
			Description: model.LocalizedString{En: "Coffee-flavoured Italian dessert.", Ar: "حلوى إيطالية بنكهة القهوة.", It: "Dolce italiano al caffè."},
			Price:       decimal.RequireFromString("8.00"),
			Category:    "Dessert",
			ImageURL:    "https://picsum.photos/seed/tiramisu/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Bruschetta", Ar: "بروسكيتا", It: "Bruschetta"},
			Description: model.LocalizedString{En: "Grilled bread with garlic, topped with tomatoes and basil.", Ar: "خبز مشوي بالثوم مغطى بالطماطم والريحان.", It: "Pane grigliato all'aglio con pomodori e basilico."},
			Price:       decimal.RequireFromString("7.50"),
			Category:    "Appetizer",
			ImageURL:    "https://picsum.photos/seed/bruschetta/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Filet Mignon", Ar: "فيليه مينيون", It: "Filetto alla griglia"},
			Description: model.LocalizedString{En: "Tender beef steak cooked to perfection.", Ar: "شريحة لحم بقري طرية مطهوة بإتقان.", It: "Tenero filetto di manzo cotto alla perfezione."},
			Price:       decimal.RequireFromString("29.99"),
			Category:    "Main Course",
			ImageURL:    "https://picsum.photos/seed/steak/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Fresh Lemonade", Ar: "عصير ليمون طازج", It: "Limonata fresca"},
			Description: model.LocalizedString{En: "House-made lemonade with mint.", Ar: "عصير ليمون منزلي بالنعناع.", It: "Limonata fatta in casa con menta."},
			Price:       decimal.RequireFromString("4.50"),
			Category:    "Drinks",
			ImageURL:    "https://picsum.photos/seed/lemonade/400/300",
		},
		{
			Name:        model.LocalizedString{En: "Espresso", Ar: "إسبريسو", It: "Espresso"},
			Description: model.LocalizedString{En: "Double shot of Italian espresso.", Ar: "جرعة مزدوجة من الإسبريسو الإيطالي.", It: "Doppio espresso italiano."},
			Price:       decimal.RequireFromString("3.00"),
			Category:    "Drinks",
			ImageURL:    "https://picsum.photos/seed/espresso/400/300",
		},
	}

	pages := []model.MenuPage{
		{Title: model.LocalizedString{En: "Starters", Ar: "المقبلات", It: "Antipasti"}, BackgroundColor: "#FDF6EC", SortOrder: 1, Category: "Appetizer"},
		{Title: model.LocalizedString{En: "Mains", Ar: "الأطباق الرئيسية", It: "Primi e Secondi"}, BackgroundColor: "#F3F7F4", SortOrder: 2, Category: "Main Course"},
		{Title: model.LocalizedString{En: "Desserts", Ar: "الحلويات", It: "Dolci"}, BackgroundColor: "#FBF0F4", SortOrder: 3, Category: "Dessert"},
		{Title: model.LocalizedString{En: "Drinks", Ar: "المشروبات", It: "Bevande"}, BackgroundColor: "#EFF4FB", SortOrder: 4, Category: "Drinks"},
	}

	pageByCategory := map[string]model.MenuPage{}
	for _, p := range pages {
		created := menu.CreatePage(p)
		pageByCategory[created.Category] = created
	}
	for _, d := range dishes {
		if page, ok := pageByCategory[d.Category]; ok {
			d.PageID = page.ID
		}
		menu.CreateDish(d)
	}
	log.Printf("Created %d menu pages and %d dishes", len(pages), len(dishes))
}

func seedTables(tables *store.TableStore) {
	capacities := []int32{4, 2, 6, 4, 8, 2, 4, 4}
	for i, capacity := range capacities {
		tables.Add(model.Table{
			ID:       i + 1,
			Capacity: capacity,
			Status:   enum.TableStatusAvailable,
		})
	}
	log.Printf("Created %d tables", len(capacities))
}

func seedRouting(routing *store.RoutingStore) error {
	return routing.SetPolicy(model.RoutingPolicy{
		Stations: []model.StationRouting{
			{Name: enum.StationKitchen, Categories: []string{"Appetizer", "Main Course", "Dessert"}},
			{Name: enum.StationBar, Categories: []string{"Drinks"}},
		},
	})
}
