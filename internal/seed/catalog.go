package seed

type sampleProduct struct {
	name     string
	category string
	stock    int
	price    string
}

var sampleProducts = []sampleProduct{
	{"Broiler Chicken", "Meat", 100, "5.00"},
	{"Free-Range Chicken", "Meat", 80, "7.50"},
	{"Turkey", "Meat", 40, "12.00"},
	{"Duck", "Meat", 30, "9.00"},
	{"Quail", "Meat", 60, "3.50"},
	{"Cornish Hen", "Meat", 45, "8.00"},
	{"Layer Chicken Eggs (Dozen)", "Eggs", 200, "4.00"},
	{"Free-Range Eggs (Dozen)", "Eggs", 150, "5.50"},
	{"Organic Eggs (Dozen)", "Eggs", 120, "6.50"},
	{"Quail Eggs (30 pcs)", "Eggs", 100, "7.00"},
	{"Duck Eggs (Dozen)", "Eggs", 80, "8.00"},
	{"Omega-3 Enriched Eggs", "Eggs", 90, "7.50"},
	{"Vaccination Kit", "Healthcare", 50, "25.00"},
	{"Poultry Vitamins (1L)", "Healthcare", 70, "18.00"},
	{"Antibiotics (100 tablets)", "Healthcare", 45, "30.00"},
	{"Dewormer (500ml)", "Healthcare", 55, "22.00"},
	{"Disinfectant (5L)", "Healthcare", 65, "28.00"},
	{"Wound Spray", "Healthcare", 85, "15.00"},
	{"Probiotics (1kg)", "Healthcare", 60, "20.00"},
	{"Electrolytes (500g)", "Healthcare", 95, "12.00"},
	{"Automatic Feeder", "Equipment", 30, "45.00"},
	{"Automatic Waterer", "Equipment", 25, "50.00"},
	{"Heating Lamp", "Equipment", 40, "22.00"},
	{"Egg Incubator (100 eggs)", "Equipment", 15, "120.00"},
	{"Brooder Box", "Equipment", 20, "65.00"},
	{"Nesting Box", "Equipment", 35, "28.00"},
	{"Poultry Netting (50m)", "Equipment", 18, "75.00"},
	{"Egg Scale", "Equipment", 50, "15.00"},
	{"Egg Cartons (50 pcs)", "Miscellaneous", 200, "8.00"},
	{"Poultry Leg Bands (100 pcs)", "Miscellaneous", 150, "6.00"},
	{"Record Book", "Miscellaneous", 80, "5.00"},
	{"Poultry Scale", "Miscellaneous", 25, "85.00"},
	{"Plucking Machine", "Miscellaneous", 10, "250.00"},
	{"Egg Washer", "Miscellaneous", 12, "180.00"},
	{"Manure Spreader", "Miscellaneous", 8, "350.00"},
	{"Poultry Carrier", "Miscellaneous", 30, "40.00"},
	{"Fly Trap", "Miscellaneous", 60, "12.00"},
	{"Rodent Control", "Miscellaneous", 45, "18.00"},
	{"Poultry Book", "Miscellaneous", 70, "15.00"},
	{"First Aid Kit", "Miscellaneous", 55, "25.00"},
	{"Egg Grading Tray", "Miscellaneous", 90, "10.00"},
	{"Poultry Apron", "Miscellaneous", 40, "22.00"},
}

// Feeds are filed under their feed type.
type sampleFeed struct {
	name     string
	category string
	level    int
}

var sampleFeeds = []sampleFeed{
	{"Organic Starter Feed", "Organic", 150},
	{"Conventional Starter Feed", "Conventional", 120},
	{"Grower Feed", "Conventional", 110},
	{"Organic Layer Feed", "Organic", 130},
	{"Conventional Layer Feed", "Conventional", 140},
	{"Broiler Feed", "Conventional", 90},
	{"Medicated Feed", "Medicated", 75},
	{"Grit Supplement", "Supplement", 60},
	{"Oyster Shell", "Supplement", 85},
	{"Poultry Premix", "Supplement", 50},
}
