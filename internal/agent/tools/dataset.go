package tools

import "github.com/decision-agent-poc-v1/agent/internal/agent/model"

// In-memory sales catalog the three data tools query. The engine treats the
// data source as a swappable collaborator; this dataset mirrors the shape of
// the Amazon India product dump (hierarchical categories, INR prices,
// discount percentages, review text).

var CatalogProducts = []model.Product{
	{
		ID:                 "B0BQRJ3C4N",
		Name:               "boAt Stone 352 Bluetooth Speaker",
		Category:           "Electronics|Speakers|BluetoothSpeakers",
		DiscountedPrice:    1499.00,
		ActualPrice:        2990.00,
		DiscountPercentage: 50,
		Rating:             4.1,
		RatingCount:        12840,
		About:              "10W portable speaker with IPX7 water resistance and 12h playback",
	},
	{
		ID:                 "B09PL79D2X",
		Name:               "JBL Flip 6 Portable Speaker",
		Category:           "Electronics|Speakers|BluetoothSpeakers",
		DiscountedPrice:    8999.00,
		ActualPrice:        11999.00,
		DiscountPercentage: 25,
		Rating:             4.5,
		RatingCount:        8930,
		About:              "30W bold sound, PartyBoost pairing, IP67 dust and water proof",
	},
	{
		ID:                 "B08KJ5F6H7",
		Name:               "Zebronics Zeb-County Speaker",
		Category:           "Electronics|Speakers|BluetoothSpeakers",
		DiscountedPrice:    599.00,
		ActualPrice:        1299.00,
		DiscountPercentage: 54,
		Rating:             3.6,
		RatingCount:        21550,
		About:              "Compact wireless speaker with FM radio, SD card slot and call function",
	},
	{
		ID:                 "B07WDK3ZS6",
		Name:               "HP DeskJet 2331 All-in-One Printer",
		Category:           "Electronics|Printers|InkjetPrinters",
		DiscountedPrice:    3499.00,
		ActualPrice:        4849.00,
		DiscountPercentage: 28,
		Rating:             3.8,
		RatingCount:        9460,
		About:              "Colour inkjet print, scan and copy for home use with USB connectivity",
	},
	{
		ID:                 "B09WN2MHVB",
		Name:               "Canon PIXMA G3000 Ink Tank Printer",
		Category:           "Electronics|Printers|InkTankPrinters",
		DiscountedPrice:    11999.00,
		ActualPrice:        14495.00,
		DiscountPercentage: 17,
		Rating:             4.2,
		RatingCount:        5230,
		About:              "Wireless ink tank all-in-one with very low cost per page",
	},
	{
		ID:                 "B07GPXXNNG",
		Name:               "Epson EcoTank L3252 Printer",
		Category:           "Electronics|Printers|InkTankPrinters",
		DiscountedPrice:    13999.00,
		ActualPrice:        16999.00,
		DiscountPercentage: 18,
		Rating:             4.4,
		RatingCount:        4110,
		About:              "Wi-Fi ink tank printer with borderless photo printing",
	},
	{
		ID:                 "B08HDJ86NZ",
		Name:               "AmazonBasics USB-C to Lightning Cable",
		Category:           "Computers&Accessories|Cables|USBCables",
		DiscountedPrice:    349.00,
		ActualPrice:        1095.00,
		DiscountPercentage: 68,
		Rating:             4.0,
		RatingCount:        33410,
		About:              "MFi certified 1m braided charging cable",
	},
	{
		ID:                 "B098NS6PVG",
		Name:               "Portronics Konnect L Fast Charging Cable",
		Category:           "Computers&Accessories|Cables|USBCables",
		DiscountedPrice:    159.00,
		ActualPrice:        399.00,
		DiscountPercentage: 60,
		Rating:             3.4,
		RatingCount:        18770,
		About:              "1.2m micro USB cable with 3A fast charge support",
	},
	{
		ID:                 "B0B5FQ3JJS",
		Name:               "Noise ColorFit Pulse 2 Smartwatch",
		Category:           "Electronics|WearableTechnology|SmartWatches",
		DiscountedPrice:    1699.00,
		ActualPrice:        4999.00,
		DiscountPercentage: 66,
		Rating:             3.9,
		RatingCount:        27850,
		About:              "1.8 inch display, SpO2 and heart rate tracking, 100 sports modes",
	},
	{
		ID:                 "B09V2QHWX3",
		Name:               "Fire-Boltt Phoenix Smart Watch",
		Category:           "Electronics|WearableTechnology|SmartWatches",
		DiscountedPrice:    1999.00,
		ActualPrice:        7999.00,
		DiscountPercentage: 75,
		Rating:             3.5,
		RatingCount:        16220,
		About:              "Bluetooth calling watch with 120 sports modes and voice assistant",
	},
	{
		ID:                 "B07X4C9LQJ",
		Name:               "Prestige Iris 750W Mixer Grinder",
		Category:           "Home&Kitchen|Appliances|MixerGrinders",
		DiscountedPrice:    2799.00,
		ActualPrice:        5195.00,
		DiscountPercentage: 46,
		Rating:             4.3,
		RatingCount:        41230,
		About:              "750W mixer grinder with 3 stainless steel jars and juicer jar",
	},
	{
		ID:                 "B09F6S8BT6",
		Name:               "Pigeon Favourite Electric Kettle",
		Category:           "Home&Kitchen|Appliances|Kettles",
		DiscountedPrice:    549.00,
		ActualPrice:        1245.00,
		DiscountPercentage: 56,
		Rating:             3.9,
		RatingCount:        38190,
		About:              "1.5L stainless steel kettle, 1500W fast boil",
	},
	{
		ID:                 "B0B1YVCJ2Y",
		Name:               "Sony WH-CH520 Wireless Headphones",
		Category:           "Electronics|Headphones|OnEar",
		DiscountedPrice:    4489.00,
		ActualPrice:        5990.00,
		DiscountPercentage: 25,
		Rating:             4.3,
		RatingCount:        7730,
		About:              "50h battery, DSEE upscaling, multipoint connection",
	},
	{
		ID:                 "B08D75V8BZ",
		Name:               "boAt Rockerz 450 Bluetooth Headphones",
		Category:           "Electronics|Headphones|OnEar",
		DiscountedPrice:    1499.00,
		ActualPrice:        3990.00,
		DiscountPercentage: 62,
		Rating:             4.0,
		RatingCount:        52280,
		About:              "40mm drivers, 15h playback, padded earcups",
	},
}

var CatalogReviews = []model.Review{
	{ProductID: "B0BQRJ3C4N", Title: "Good value for money", Content: "Great sound for the price, bass is punchy and battery easily lasts a full day trip.", Rating: 4.1},
	{ProductID: "B0BQRJ3C4N", Title: "Average mic", Content: "Speaker is good but the call quality is poor, the mic picks up too much noise.", Rating: 4.1},
	{ProductID: "B09PL79D2X", Title: "Excellent sound", Content: "Amazing clarity and deep bass, love the rugged build. Worth every rupee.", Rating: 4.5},
	{ProductID: "B09PL79D2X", Title: "Premium feel", Content: "Excellent speaker, works well outdoors, battery life is great.", Rating: 4.5},
	{ProductID: "B08KJ5F6H7", Title: "Stopped working", Content: "Stopped working after two months, very cheap build quality. Waste of money, asked for refund.", Rating: 3.6},
	{ProductID: "B08KJ5F6H7", Title: "Ok for the price", Content: "Sound is average and tinny but fine for a small room. FM radio is a nice bonus.", Rating: 3.6},
	{ProductID: "B07WDK3ZS6", Title: "Ink runs out fast", Content: "Cartridges are expensive and run out quickly. Printing is slow and setup was a headache.", Rating: 3.8},
	{ProductID: "B07WDK3ZS6", Title: "Does the job", Content: "Good enough for occasional home printing, scan quality is decent.", Rating: 3.8},
	{ProductID: "B09WN2MHVB", Title: "Very economical", Content: "Excellent cost per page, print quality is great for documents and photos.", Rating: 4.2},
	{ProductID: "B09WN2MHVB", Title: "Wifi drops", Content: "Printer is good but the wifi connection keeps dropping, reconnecting is annoying.", Rating: 4.2},
	{ProductID: "B07GPXXNNG", Title: "Best ink tank printer", Content: "Love the print quality, ink lasts for months. Highly recommended for home office.", Rating: 4.4},
	{ProductID: "B08HDJ86NZ", Title: "Sturdy cable", Content: "Braided cable feels sturdy, charges fast. Good value for money.", Rating: 4.0},
	{ProductID: "B098NS6PVG", Title: "Broke in a month", Content: "The connector broke within a month, very disappointed. Charging became slow before it failed.", Rating: 3.4},
	{ProductID: "B098NS6PVG", Title: "Cheap but works", Content: "Works fine for the price, don't expect durability.", Rating: 3.4},
	{ProductID: "B0B5FQ3JJS", Title: "Good budget watch", Content: "Display is bright, tracking is decent. Great value for money at this price.", Rating: 3.9},
	{ProductID: "B0B5FQ3JJS", Title: "Inaccurate sensors", Content: "Heart rate readings are way off and the app keeps disconnecting. Poor experience.", Rating: 3.9},
	{ProductID: "B09V2QHWX3", Title: "Battery drains fast", Content: "Battery barely lasts a day with calling on, and the strap feels cheap. Not happy.", Rating: 3.5},
	{ProductID: "B09V2QHWX3", Title: "Calling works well", Content: "Bluetooth calling is surprisingly good for the price, display is bright.", Rating: 3.5},
	{ProductID: "B07X4C9LQJ", Title: "Kitchen workhorse", Content: "Excellent grinder, handles everything from chutney to dough. Jars feel sturdy.", Rating: 4.3},
	{ProductID: "B07X4C9LQJ", Title: "Bit noisy", Content: "Grinds well but it is quite loud at full speed.", Rating: 4.3},
	{ProductID: "B09F6S8BT6", Title: "Handle gets hot", Content: "Boils quickly but the handle gets hot and the lid hinge broke after a few weeks. Poor plastic quality.", Rating: 3.9},
	{ProductID: "B09F6S8BT6", Title: "Fast boiling", Content: "Boils water really fast, good for hostel use. Great value for money.", Rating: 3.9},
	{ProductID: "B0B1YVCJ2Y", Title: "Superb battery", Content: "50 hours battery is real, sound is excellent and they are very comfortable. Love them.", Rating: 4.3},
	{ProductID: "B08D75V8BZ", Title: "Good but bulky", Content: "Sound is good and bass is strong, though earcups get warm after an hour.", Rating: 4.0},
	{ProductID: "B08D75V8BZ", Title: "Great for the price", Content: "Excellent battery and build for this price range, works well with calls too.", Rating: 4.0},
}
