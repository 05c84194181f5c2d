package catalog

// Built-in items for each domain. Ids are stable keys referenced by the
// persisted inventory documents; renaming an id orphans its counts.

var preparedIngredients = map[string]Item{
	"dough": {Name: "Pizza Dough", Category: "Base"},

	"evoo":               {Name: "Garlic-Oregano EVOO", Category: "Sauce"},
	"sanMarzano":         {Name: "San Marzano DOP Sauce", Category: "Sauce"},
	"hotHoney":           {Name: "Mike's Hot Honey", Category: "Sauce"},
	"balsamicDrizzle":    {Name: "Balsamic Drizzle", Category: "Sauce"},
	"caesarDressing":     {Name: "House Caesar Dressing", Category: "Sauce"},
	"spicyTomatoChutney": {Name: "Spicy Tomato Chutney", Category: "Sauce"},

	"fiorDiLatte": {Name: "Fior di Latte", Category: "Cheese"},
	"pecorino":    {Name: "Pecorino Romano", Category: "Cheese"},
	"ricotta":     {Name: "Ricotta", Category: "Cheese"},
	"burrata":     {Name: "Burrata Ball", Category: "Cheese"},
	"parmesan":    {Name: "Shaved Parmesan", Category: "Cheese"},

	"pepperoni":        {Name: "Ezzo Pepperoni", Category: "Meat"},
	"sausage":          {Name: "Ezzo Sausage", Category: "Meat"},
	"prosciutto":       {Name: "Prosciutto", Category: "Meat"},
	"crispyProsciutto": {Name: "Crispy Prosciutto", Category: "Meat"},
	"capicola":         {Name: "Spicy Capicola", Category: "Meat"},

	"mushrooms":       {Name: "Sautéed Mushrooms", Category: "Vegetable"},
	"redOnions":       {Name: "Red Onions", Category: "Vegetable"},
	"pickledOnions":   {Name: "Pickled Onions", Category: "Vegetable"},
	"teardropPeppers": {Name: "Tear Drop Peppers", Category: "Vegetable"},
	"romaine":         {Name: "Romaine", Category: "Vegetable"},
	"lemon":           {Name: "Lemons", Category: "Vegetable"},

	"basil":           {Name: "Chiffonade Basil", Category: "Herb"},
	"rosemary":        {Name: "Rosemary Sprigs", Category: "Herb"},
	"maldonSalt":      {Name: "Maldon Sea Salt", Category: "Seasoning"},
	"redPepperFlakes": {Name: "Red Peppa Flakes", Category: "Seasoning"},

	"croutons": {Name: "Croutons", Category: "Salad"},

	"boxTops": {Name: "Pizza Box Tops", Category: "Dry Goods"},
}

var rawIngredients = map[string]Item{
	"caputoPizzaria":       {Name: "Caputo Pizzaria Flour", Category: "Flour", Unit: "kg"},
	"caputoAmericana":      {Name: "Caputo Americana Flour", Category: "Flour", Unit: "kg"},
	"sanMarzanoTomatoes":   {Name: "San Marzano Tomato Cans", Category: "Canned Goods", Unit: "cans"},
	"redPepperDrops":       {Name: "Red Pepper Drops", Category: "Canned Goods", Unit: "cans"},
	"pecorinoWhole":        {Name: "Pecorino Cheese", Category: "Cheese", Unit: "kg"},
	"evooBottles":          {Name: "EVOO Bottles", Category: "Oil", Unit: "bottles"},
	"basilBags":            {Name: "Basil Bags", Category: "Herbs", Unit: "bags"},
	"rosemaryBags":         {Name: "Rosemary Bags", Category: "Herbs", Unit: "bags"},
	"oreganoContainer":     {Name: "Oregano Container", Category: "Herbs", Unit: "containers"},
	"garlicContainer":      {Name: "Garlic Container", Category: "Aromatics", Unit: "containers"},
	"pepperoniBags":        {Name: "Pepperoni Bags", Category: "Meat", Unit: "bags"},
	"sausageBags":          {Name: "Sausage Bags", Category: "Meat", Unit: "bags"},
	"mozzarellaContainers": {Name: "Mozzarella Containers", Category: "Cheese", Unit: "containers"},
	"ricottaContainers":    {Name: "Ricotta", Category: "Cheese", Unit: "containers"},
	"buratteContainers":    {Name: "Buratta", Category: "Cheese", Unit: "containers"},
	"mushroomBox":          {Name: "Mushroom Box", Category: "Produce", Unit: "boxes"},
	"lemons":               {Name: "Lemons", Category: "Produce", Unit: "unit"},
	"shavedParmesanBag":    {Name: "Shaved Parmesan Bag", Category: "Cheese", Unit: "bags"},
	"spicyTomatoChutney":   {Name: "Spicy Tomato Chutney Containers", Category: "Sauces", Unit: "containers"},
	"pipingBags":           {Name: "Piping Bags", Category: "Supplies", Unit: "bags"},
}

var paperGoods = map[string]Item{
	"bevNapkins":    {Name: "1/4 Fold Beverage Napkin", Category: "Napkins", Unit: "cases"},
	"dinnerNapkins": {Name: "1/8 Fold Dinner Napkin", Category: "Napkins", Unit: "cases"},

	"pizzaTops":    {Name: "Pizza Box Tops", Category: "Pizza Boxes", Unit: "bundles"},
	"pizzaBottoms": {Name: "Pizza Box Bottoms", Category: "Pizza Boxes", Unit: "bundles"},

	"togoBags":         {Name: "Togo Bags", Category: "To-Go Items", Unit: "cases"},
	"togoBoxes":        {Name: "Togo Boxes", Category: "To-Go Items", Unit: "cases"},
	"preRolledCutlery": {Name: "Pre-Rolled Cutlery", Category: "To-Go Items", Unit: "cases"},
	"deliWrap":         {Name: "Deli Wrap", Category: "To-Go Items", Unit: "cases"},

	"foilCup":       {Name: "Round Foil Cup 4 oz", Category: "Containers", Unit: "cases"},
	"portionCupLid": {Name: "Portion Cup Lid 1.5 to 2.5 oz", Category: "Containers", Unit: "cases"},
	"portionCup":    {Name: "Plastic Portion Cup 2.5 oz", Category: "Containers", Unit: "cases"},
	"clearCup":      {Name: "Solo Clear Plastic Cup 9 oz", Category: "Containers", Unit: "cases"},
	"fiberTray":     {Name: "Molded Fiber Tray 9x7", Category: "Containers", Unit: "cases"},

	"fiberPlates":   {Name: "8x6 Fiber Plates", Category: "Service Items", Unit: "cases"},
	"tastingSpoons": {Name: "Wooden Tasting Spoons", Category: "Service Items", Unit: "cases"},

	"goldfish": {Name: "Goldfish Crackers", Category: "Retail Items", Unit: "cases"},
}
