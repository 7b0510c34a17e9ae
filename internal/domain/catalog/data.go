package catalog

// Seed data for the storefront. Prices are whole Rupiah.

var defaultCategories = []Category{
	{
		ID:   "main-produk",
		Name: "Main Produk",
		Subcategories: []Subcategory{
			{ID: "custom-website", Name: "Pembuatan Custom Website"},
			{ID: "desain-grafis", Name: "Desain Grafis"},
			{ID: "seo", Name: "SEO Specialist"},
			{ID: "social-media", Name: "Social Media Management"},
		},
	},
	{
		ID:   "sub-produk",
		Name: "Sub Produk",
		Subcategories: []Subcategory{
			{ID: "google-bisnis", Name: "Google Bisnis"},
			{ID: "company-profile", Name: "Company Profile Design"},
		},
	},
	{
		ID:   "others",
		Name: "Others",
		Subcategories: []Subcategory{
			{ID: "corporate-branding", Name: "Corporate Branding"},
			{ID: "tech-support", Name: "Tech Support"},
		},
	},
}

var defaultPackages = []Package{
	{
		ID:          "pkg-website-basic",
		Name:        "Website Basic",
		Description: "Website company profile sederhana untuk usaha yang baru mulai online.",
		Price:       1500000,
		Image:       "/images/packages/website-basic.png",
		Category:    "main-produk",
		Subcategory: "custom-website",
		Features: []Feature{
			{Name: "5 halaman statis", Included: true},
			{Name: "Desain responsif", Included: true},
			{Name: "Domain .com 1 tahun", Included: true},
			{Name: "Integrasi CMS", Included: false},
		},
	},
	{
		ID:          "pkg-website-bisnis",
		Name:        "Website Bisnis",
		Description: "Website dinamis dengan CMS untuk bisnis yang sedang berkembang.",
		Price:       3500000,
		Image:       "/images/packages/website-bisnis.png",
		Category:    "main-produk",
		Subcategory: "custom-website",
		Popular:     true,
		Features: []Feature{
			{Name: "10 halaman dinamis", Included: true},
			{Name: "Desain responsif", Included: true},
			{Name: "Integrasi CMS", Included: true},
			{Name: "Optimasi SEO dasar", Included: true},
		},
	},
	{
		ID:          "pkg-website-premium",
		Name:        "Website Premium",
		Description: "Solusi lengkap dengan fitur custom dan dukungan prioritas.",
		Price:       7500000,
		Image:       "/images/packages/website-premium.png",
		Category:    "main-produk",
		Subcategory: "custom-website",
		Features: []Feature{
			{Name: "Halaman tanpa batas", Included: true},
			{Name: "Fitur custom", Included: true},
			{Name: "Integrasi CMS", Included: true},
			{Name: "Optimasi SEO lanjutan", Included: true},
		},
	},
	{
		ID:          "pkg-desain-logo",
		Name:        "Paket Desain Logo",
		Description: "Logo profesional dengan tiga alternatif konsep.",
		Price:       750000,
		Image:       "/images/packages/desain-logo.png",
		Category:    "main-produk",
		Subcategory: "desain-grafis",
	},
	{
		ID:          "pkg-seo-bulanan",
		Name:        "SEO Bulanan",
		Description: "Optimasi mesin pencari berkelanjutan dengan laporan bulanan.",
		Price:       2000000,
		Image:       "/images/packages/seo-bulanan.png",
		Category:    "main-produk",
		Subcategory: "seo",
	},
	{
		ID:          "pkg-social-media",
		Name:        "Social Media Management",
		Description: "Pengelolaan konten dan jadwal posting untuk tiga platform.",
		Price:       1750000,
		Image:       "/images/packages/social-media.png",
		Category:    "main-produk",
		Subcategory: "social-media",
	},
	{
		ID:          "pkg-google-bisnis",
		Name:        "Google Bisnis Setup",
		Description: "Pendaftaran dan optimasi profil Google Business.",
		Price:       500000,
		Image:       "/images/packages/google-bisnis.png",
		Category:    "sub-produk",
		Subcategory: "google-bisnis",
	},
	{
		ID:          "pkg-company-profile",
		Name:        "Company Profile Design",
		Description: "Desain company profile cetak dan digital.",
		Price:       1250000,
		Image:       "/images/packages/company-profile.png",
		Category:    "sub-produk",
		Subcategory: "company-profile",
	},
	{
		ID:          "pkg-corporate-branding",
		Name:        "Corporate Branding",
		Description: "Paket identitas merek lengkap untuk perusahaan.",
		Price:       5000000,
		Image:       "/images/packages/corporate-branding.png",
		Category:    "others",
		Subcategory: "corporate-branding",
	},
	{
		ID:          "pkg-tech-support",
		Name:        "Tech Support Bulanan",
		Description: "Dukungan teknis dan pemeliharaan website bulanan.",
		Price:       900000,
		Image:       "/images/packages/tech-support.png",
		Category:    "others",
		Subcategory: "tech-support",
	},

	// Add-ons
	{
		ID:          "addon-multi-language",
		Name:        "Multi Language",
		Description: "Dukungan dua bahasa tambahan pada website.",
		Price:       500000,
		Image:       "/images/addons/multi-language.png",
		Category:    "addons",
	},
	{
		ID:          "addon-dark-mode",
		Name:        "Dark Mode",
		Description: "Tema gelap otomatis mengikuti preferensi pengunjung.",
		Price:       250000,
		Image:       "/images/addons/dark-mode.png",
		Category:    "addons",
	},
	{
		ID:          "addon-cdn",
		Name:        "CDN",
		Description: "Distribusi konten global untuk loading lebih cepat.",
		Price:       350000,
		Image:       "/images/addons/cdn.png",
		Category:    "addons",
	},
	{
		ID:          "addon-premium-ssl",
		Name:        "Premium SSL",
		Description: "Sertifikat SSL premium dengan garansi.",
		Price:       400000,
		Image:       "/images/addons/premium-ssl.png",
		Category:    "addons",
	},
	{
		ID:          "addon-custom-email",
		Name:        "Custom Email",
		Description: "Lima akun email dengan domain sendiri.",
		Price:       300000,
		Image:       "/images/addons/custom-email.png",
		Category:    "addons",
	},
	{
		ID:          "addon-analytics",
		Name:        "Analytics",
		Description: "Dashboard statistik pengunjung dan konversi.",
		Price:       450000,
		Image:       "/images/addons/analytics.png",
		Category:    "addons",
	},
	{
		ID:          "addon-priority-support",
		Name:        "Priority Support",
		Description: "Jalur dukungan prioritas dengan respon cepat.",
		Price:       600000,
		Image:       "/images/addons/priority-support.png",
		Category:    "addons",
	},
}
