package catalog

// Seed returns the initial catalog used when no products have been persisted yet
func Seed() []Product {
	return CloneAll(seedProducts)
}

var seedProducts = []Product{
	{
		ID:       "1",
		Name:     "Midnight Silk Banarasi Saree",
		Category: CategoryWomen,
		Style:    StyleTraditional,
		Price:    12499,
		Stock:    8,
		Image:    "https://images.unsplash.com/photo-1610030469983-98e550d6193c?auto=format&fit=crop&q=80&w=800",
		AdditionalImages: []string{
			"https://images.unsplash.com/photo-1583391733956-6c78276477e2?auto=format&fit=crop&q=80&w=800",
			"https://images.unsplash.com/photo-1617627143750-d86bc21e42bb?auto=format&fit=crop&q=80&w=800",
		},
		Description: "A masterpiece of heritage craftsmanship. Hand-woven in pure silk with intricate silver and gold zari floral patterns.",
		Featured:    true,
		Reviews: []Review{
			{ID: "r1", UserName: "Priya Sharma", Rating: 5, Comment: "The drape is magnificent. Truly a royal feel.", Date: "2024-01-15"},
			{ID: "r12", UserName: "Meera R.", Rating: 5, Comment: "Authentic Banarasi quality.", Date: "2024-03-02"},
		},
		AverageRating: 5,
	},
	{
		ID:       "2",
		Name:     "Royal Ivory Sherwani",
		Category: CategoryMen,
		Style:    StyleTraditional,
		Price:    18999,
		Stock:    5,
		Image:    "https://images.unsplash.com/photo-1624371414361-e67098f98ec5?auto=format&fit=crop&q=80&w=800",
		AdditionalImages: []string{
			"https://images.unsplash.com/photo-1597983073493-88cd35cf93b0?auto=format&fit=crop&q=80&w=800",
		},
		Description: "Bespoke ivory sherwani featuring heavy zardosi embroidery. Designed for a grand wedding celebration.",
		Featured:    true,
		Reviews: []Review{
			{ID: "r2", UserName: "Aditya V.", Rating: 4, Comment: "Excellent fitting and premium feel of the fabric.", Date: "2024-02-10"},
		},
		AverageRating: 4,
	},
	{
		ID:       "3",
		Name:     "Champagne Satin Evening Gown",
		Category: CategoryWomen,
		Style:    StyleModern,
		Price:    8999,
		Stock:    12,
		Image:    "https://images.unsplash.com/photo-1566174053879-31528523f8ae?auto=format&fit=crop&q=80&w=800",
		AdditionalImages: []string{
			"https://images.unsplash.com/photo-1539008835657-9e8e81839967?auto=format&fit=crop&q=80&w=800",
		},
		Description: "Modern minimalist silhouette in high-grade liquid satin. Features a sophisticated cowl neck and side slit.",
		Featured:    true,
		Reviews: []Review{
			{ID: "r3", UserName: "Sara J.", Rating: 5, Comment: "Stunning fit. I felt like a star in this gown!", Date: "2024-04-12"},
		},
		AverageRating: 5,
	},
	{
		ID:          "4",
		Name:        "Velvet Bandhgala Set",
		Category:    CategoryMen,
		Style:       StyleTraditional,
		Price:       14500,
		Stock:       7,
		Image:       "https://images.unsplash.com/photo-1593032465175-481ac7f401a0?auto=format&fit=crop&q=80&w=800",
		Description: "Deep navy velvet Bandhgala with hand-crafted metallic buttons and a tailored finish.",
		Reviews: []Review{
			{ID: "r4", UserName: "Vikram Singh", Rating: 5, Comment: "The velvet is very high quality. Very warm and rich look.", Date: "2024-05-20"},
		},
		AverageRating: 5,
	},
	{
		ID:          "5",
		Name:        "Kids Festive Leheriya Set",
		Category:    CategoryKids,
		Style:       StyleTraditional,
		Price:       3299,
		Stock:       20,
		Image:       "https://images.unsplash.com/photo-1518831959646-742c3a14ebf7?auto=format&fit=crop&q=80&w=800",
		Description: "Vibrant pink and yellow Leheriya print lehenga for the little ones. Soft cotton lining for comfort.",
		Featured:    true,
		Reviews: []Review{
			{ID: "r5", UserName: "Anita K.", Rating: 4, Comment: "My daughter loved the bright colors. Very comfortable.", Date: "2024-06-15"},
		},
		AverageRating: 4,
	},
	{
		ID:       "6",
		Name:     "Italian Wool Charcoal Suit",
		Category: CategoryMen,
		Style:    StyleModern,
		Price:    24999,
		Stock:    4,
		Image:    "https://images.unsplash.com/photo-1594932224828-b4b059b6f6ee?auto=format&fit=crop&q=80&w=800",
		AdditionalImages: []string{
			"https://images.unsplash.com/photo-1507679799987-c73779587ccf?auto=format&fit=crop&q=80&w=800",
		},
		Description:   "Premium Italian wool slim-fit suit. Perfect for the modern corporate boardroom or high-profile events.",
		Reviews:       []Review{},
		AverageRating: 0,
	},
	{
		ID:          "7",
		Name:        "Hand-Painted Floral Organza",
		Category:    CategoryWomen,
		Style:       StyleTraditional,
		Price:       7499,
		Stock:       6,
		Image:       "https://images.unsplash.com/photo-1610189012906-40da36248da9?auto=format&fit=crop&q=80&w=800",
		Description: "Ethereal ivory organza saree with hand-painted floral motifs and a delicate scalloped border.",
		Reviews: []Review{
			{ID: "r7", UserName: "Nina G.", Rating: 5, Comment: "So light and elegant. Received many compliments.", Date: "2024-07-08"},
		},
		AverageRating: 5,
	},
	{
		ID:          "8",
		Name:        "Kids Urban Denim Jacket",
		Category:    CategoryKids,
		Style:       StyleModern,
		Price:       2499,
		Stock:       15,
		Image:       "https://images.unsplash.com/photo-1519457431-7571b028930a?auto=format&fit=crop&q=80&w=800",
		Description: "Sturdy denim jacket with modern distressed details. A versatile layer for every young trendsetter.",
		Reviews: []Review{
			{ID: "r8", UserName: "Rahul M.", Rating: 4, Comment: "Good quality denim. Fits true to size.", Date: "2024-08-12"},
		},
		AverageRating: 4,
	},
	{
		ID:            "9",
		Name:          "Suede Camel Overcoat",
		Category:      CategoryMen,
		Style:         StyleModern,
		Price:         15999,
		Stock:         3,
		Image:         "https://images.unsplash.com/photo-1539571696357-5a69c17a67c6?auto=format&fit=crop&q=80&w=800",
		Description:   "Luxury suede overcoat in timeless camel hue. An investment piece for the winter wardrobe.",
		Reviews:       []Review{},
		AverageRating: 0,
	},
	{
		ID:          "10",
		Name:        "Kids Royal Kurta Set",
		Category:    CategoryKids,
		Style:       StyleTraditional,
		Price:       1999,
		Stock:       10,
		Image:       "https://images.unsplash.com/photo-1518831959646-742c3a14ebf7?auto=format&fit=crop&q=80&w=800",
		Description: "Classic silk-blend kurta with churidar. Elegant yet easy for kids to move around in.",
		Reviews: []Review{
			{ID: "r10", UserName: "Kavita L.", Rating: 5, Comment: "Perfect for the Diwali pooja. My son looked adorable.", Date: "2024-09-01"},
		},
		AverageRating: 5,
	},
	{
		ID:          "11",
		Name:        "Pleated Chiffon Sun Dress",
		Category:    CategoryWomen,
		Style:       StyleModern,
		Price:       4599,
		Stock:       25,
		Image:       "https://images.unsplash.com/photo-1496747611176-843222e1e57c?auto=format&fit=crop&q=80&w=800",
		Description: "Airy pleated chiffon dress with a vibrant summer print. Ideal for resort wear and brunches.",
		Reviews: []Review{
			{ID: "r11", UserName: "Esha B.", Rating: 4, Comment: "Very breezy and pretty.", Date: "2024-10-15"},
		},
		AverageRating: 4,
	},
}
