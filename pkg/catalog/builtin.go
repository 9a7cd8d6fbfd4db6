package catalog

// Section keys of the built-in media document.
const (
	SectionBrandIdentity         = "brand_identity"
	SectionWebsiteHeadersBanners = "website_headers_banners"
	SectionFunctionalIcons       = "functional_icons"
	SectionSectionGraphics       = "section_graphics"
	SectionDesignSpecifications  = "design_specifications"
	SectionUsageGuidelines       = "usage_guidelines"
)

// ReferenceSections lists the built-in sections that hold guidelines rather
// than assets.
var ReferenceSections = []string{SectionDesignSpecifications, SectionUsageGuidelines}

// DefaultGrid returns the built-in grid catalog drawn by the renderer.
func DefaultGrid() []Category {
	return normalizeGrid([]Category{
		{Name: "Brand Identity", Assets: []Asset{
			{File: "Logo.jpg", Description: "Main logo", Usage: "Headers"},
			{File: "favicon.png", Description: "Browser icon", Usage: "Favicon"},
			{File: "app_icon.png", Description: "Mobile icon", Usage: "Apps"},
		}},
		{Name: "Website Headers", Assets: []Asset{
			{File: "header.png", Description: "Header banner", Usage: "Website"},
			{File: "hero.png", Description: "Portal hero", Usage: "Landing"},
			{File: "contact.png", Description: "Contact bg", Usage: "Contact"},
		}},
		{Name: "Functional Icons", Assets: []Asset{
			{File: "security.png", Description: "Security icon", Usage: "Security"},
			{File: "rights.png", Description: "Rights icon", Usage: "Civil rights"},
			{File: "loading.png", Description: "Loading icon", Usage: "Loading"},
		}},
		{Name: "Section Graphics", Assets: []Asset{
			{File: "team.png", Description: "Team image", Usage: "About"},
			{File: "404.png", Description: "404 graphic", Usage: "Error pages"},
		}},
	})
}

// DefaultDocument returns the built-in media asset catalog.
func DefaultDocument() *Document {
	return &Document{Sections: []Section{
		{Key: SectionBrandIdentity, Entries: []Entry{
			asset("primary_logo", "MISJusticeAlliance-Logo.jpg",
				"Main logo featuring anonymous figure in suit holding scales of justice shield",
				"Primary branding, headers, official documents",
				Fields{
					{"style", "Black silhouette on transparent/white background"},
					{"format", "JPG/PNG"},
					{"minimum_size", "200px width"},
					{"clear_space", "50px on all sides"},
				}),
			asset("favicon", "favicon.png",
				"Simplified scales of justice icon for browser tabs",
				"Browser favicon, bookmark icon",
				Fields{
					{"sizes", []string{"16x16", "32x32", "48x48", "64x64"}},
					{"format", "PNG/ICO"},
					{"background", "Transparent or white"},
				}),
			asset("mobile_app_icon", "mobile_app_icon.png",
				"Scales of justice within shield for mobile applications",
				"Mobile app icon, progressive web app",
				Fields{
					{"sizes", []string{"57x57", "72x72", "114x114", "144x144", "180x180"}},
					{"format", "PNG"},
					{"background", "Solid color or transparent"},
				}),
		}},
		{Key: SectionWebsiteHeadersBanners, Entries: []Entry{
			asset("main_header_banner", "header_banner.png",
				"Wide banner featuring anonymous figure with scales shield",
				"Website header, landing page hero",
				Fields{
					{"dimensions", "1920x400px recommended"},
					{"aspect_ratio", "4.8:1"},
					{"format", "PNG/WebP"},
					{"responsive", "Scalable to mobile screens"},
				}),
			asset("submission_portal_hero", "submission_hero.png",
				"Hero image for anonymous submission section",
				"Portal landing page, submission form header",
				Fields{
					{"dimensions", "1200x600px"},
					{"aspect_ratio", "2:1"},
					{"format", "PNG/WebP"},
					{"overlay_compatible", "Text overlay friendly"},
				}),
			asset("contact_background", "contact_bg.png",
				"Professional consultation setting background",
				"Contact page background, consultation sections",
				Fields{
					{"dimensions", "1920x1080px"},
					{"opacity", "50-70% for text overlay"},
					{"format", "PNG/WebP"},
				}),
		}},
		{Key: SectionFunctionalIcons, Entries: []Entry{
			asset("security_privacy_icon", "security_icon.png",
				"Padlock with scales of justice symbol",
				"Security features, privacy policy sections",
				Fields{
					{"sizes", []string{"64x64", "128x128", "256x256"}},
					{"format", "PNG/SVG"},
					{"style", "Minimalist black silhouette"},
				}),
			asset("civil_rights_icon", "civil_rights_icon.png",
				"Raised fist holding scales within shield",
				"Civil rights sections, advocacy categories",
				Fields{
					{"sizes", []string{"64x64", "128x128", "256x256"}},
					{"format", "PNG/SVG"},
					{"style", "Professional advocacy symbol"},
				}),
			asset("loading_animation", "loading_icon.png",
				"Rotating scales of justice for loading states",
				"Form submissions, page loading, AJAX requests",
				Fields{
					{"size", "48x48px"},
					{"format", "PNG/GIF/CSS animation"},
					{"animation", "Smooth rotation"},
				}),
		}},
		{Key: SectionSectionGraphics, Entries: []Entry{
			asset("team_illustration", "team_image.png",
				"Multiple anonymous silhouettes representing legal team",
				"About section, team page, professional services",
				Fields{
					{"dimensions", "800x600px"},
					{"format", "PNG/WebP"},
					{"style", "Professional group silhouette"},
				}),
			asset("error_404_image", "error_404.png",
				"Figure with magnifying glass and scales for missing pages",
				"404 error pages, missing content notifications",
				Fields{
					{"dimensions", "600x400px"},
					{"format", "PNG/WebP"},
					{"style", "Professional but approachable"},
				}),
		}},
		{Key: SectionDesignSpecifications, Entries: []Entry{
			group("color_palette", Fields{
				{"primary", "#000000 (Black)"},
				{"secondary", "#FFFFFF (White)"},
				{"accent", "#333333 (Dark Gray)"},
				{"background", "#F8F9FA (Light Gray)"},
				{"text", "#212529 (Near Black)"},
			}),
			group("typography_compatibility", Fields{
				{"recommended_fonts", []string{"Inter", "Source Sans Pro", "Open Sans"}},
				{"heading_weight", "600-700 (Semi-bold to Bold)"},
				{"body_weight", "400 (Regular)"},
				{"legal_documents", "Georgia, Times New Roman (Serif)"},
			}),
			group("responsive_guidelines", Fields{
				{"desktop", "1920px+ full resolution"},
				{"tablet", "768-1919px scaled appropriately"},
				{"mobile", "320-767px optimized versions"},
				{"loading_optimization", "WebP format for modern browsers, PNG fallback"},
			}),
		}},
		{Key: SectionUsageGuidelines, Entries: []Entry{
			group("brand_consistency", Fields{
				{"logo_placement", "Top-left corner standard, center for hero sections"},
				{"clear_space", "Maintain 50px minimum clear space around logo"},
				{"scaling", "Never stretch disproportionately, maintain aspect ratio"},
				{"background", "Ensure high contrast, prefer white or light backgrounds"},
			}),
			group("accessibility", Fields{
				{"alt_text", "Provide descriptive alt text for all images"},
				{"contrast_ratio", "Minimum 4.5:1 for normal text, 3:1 for large text"},
				{"scalability", "Images must remain clear at 200% zoom"},
				{"screen_readers", "Use semantic HTML with proper image descriptions"},
			}),
			group("legal_considerations", Fields{
				{"anonymity_protection", "Images reinforce anonymous nature of services"},
				{"professional_appearance", "Maintain serious, trustworthy aesthetic"},
				{"cultural_sensitivity", "Avoid imagery that could exclude or alienate"},
				{"privacy_focus", "Visual elements should emphasize security and discretion"},
			}),
		}},
	}}
}

func asset(name, file, description, usage string, specs Fields) Entry {
	a := &Asset{
		File:           file,
		Description:    description,
		Usage:          usage,
		Specifications: specs,
	}
	return Entry{Name: name, Asset: a, Fields: a.Fields()}
}

func group(name string, f Fields) Entry {
	return Entry{Name: name, Fields: f}
}
