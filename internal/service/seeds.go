package service

// DefaultSeeds are the search queries used to bootstrap an empty catalog,
// spread across the supported categories.
var DefaultSeeds = []string{
	// Electronics
	"Samsung Galaxy S24",
	"iPhone 15",
	"iPad Air",
	"MacBook Pro",
	"Dell XPS laptop",
	"HP laptop",
	"Sony WH-1000XM5 headphones",
	"Bose QuietComfort headphones",
	"LG OLED TV",
	"Samsung 4K TV",

	// Beauty
	"CeraVe moisturizer",
	"Neutrogena sunscreen",
	"Maybelline mascara",
	"L'Oreal foundation",

	// Home
	"Dyson vacuum cleaner",
	"Shark vacuum",
	"KitchenAid stand mixer",
	"Ninja blender",
	"Instant Pot",

	// Food
	"Starbucks coffee beans",
	"Ghirardelli chocolate",
	"KIND protein bars",

	// Fashion
	"Nike running shoes",
	"Adidas sneakers",
	"Levi's jeans",
	"North Face jacket",

	// Sports
	"Fitbit fitness tracker",
	"Garmin smartwatch",
	"yoga mat",
	"resistance bands",
	"Coleman camping tent",
	"Yeti cooler",
	"Stanley thermos",

	// Books
	"Atomic Habits book",
	"Harry Potter book set",
	"a song of ice and fire book set",

	// Toys
	"LEGO Star Wars set",
	"Hot Wheels track",
	"Barbie doll",
	"Rubik's cube",

	// Health
	"Omron blood pressure monitor",
	"Braun thermometer",
	"multivitamin gummies",

	// Office
	"Logitech wireless mouse",
	"mechanical keyboard",
	"office chair",
	"standing desk",

	// Pets
	"dog food",
	"cat litter",
	"pet carrier",
}
