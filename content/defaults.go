package content

// DefaultThemeColor is used when settings carry no usable color.
const DefaultThemeColor = "#7c3aed"

// Default tables. Normalizers read every field through these so the
// fallback of each field is declared in exactly one place.
var (
	PageDefaults = Page{
		Title:       "صفحة بدون عنوان",
		IsPublished: true,
	}

	ServiceDefaults = ServicePackage{
		Title:    "خدمة بدون عنوان",
		Platform: "other",
		IsActive: true,
		MinOrder: 100,
		MaxOrder: 10000,
	}

	BannerDefaults = Banner{
		CTAText:  "اطلب الآن",
		CTALink:  "#services",
		IsActive: true,
	}

	PlatformDefaults = Platform{
		IsActive: true,
	}

	PostDefaults = BlogPost{
		Title:  "مقال بدون عنوان",
		Format: FormatHTML,
		Author: "فريق التحرير",
		Status: StatusPublished,
	}
)

// DefaultSettings returns the complete settings used whenever the gateway
// cannot supply them. Each call returns a fresh copy.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		SiteName:       "متجر النمو الاجتماعي",
		LogoURL:        "/public/logo.svg",
		FaviconURL:     "/public/favicon.svg",
		ThemeColor:     DefaultThemeColor,
		SEOTitle:       "متجر النمو الاجتماعي | زيادة المتابعين والتفاعل",
		SEODescription: "خدمات زيادة المتابعين والإعجابات والمشاهدات لجميع منصات التواصل الاجتماعي بأسعار مناسبة وتنفيذ سريع.",
		Announcement: Announcement{
			Enabled: false,
			Text:    "خصم ٢٠٪ على جميع الخدمات لفترة محدودة",
			Link:    "#services",
		},
		Homepage: HomepageContent{
			Hero: Hero{
				Title:    "نمِّ حساباتك على منصات التواصل الاجتماعي",
				Subtitle: "متابعون حقيقيون وتفاعل حقيقي وتنفيذ فوري وآمن لحساباتك",
				CTAText:  "ابدأ الآن",
				CTALink:  "#services",
			},
			Features: FeatureSection{
				SectionHeading: SectionHeading{
					Title:    "لماذا تختارنا؟",
					Subtitle: "نقدم لك أفضل تجربة لنمو حساباتك",
				},
				Items: []Feature{
					{Icon: "⚡", Title: "تنفيذ سريع", Description: "يبدأ تنفيذ طلبك خلال دقائق من الدفع"},
					{Icon: "🔒", Title: "آمن تماماً", Description: "لا نطلب كلمة المرور الخاصة بحسابك أبداً"},
					{Icon: "💬", Title: "دعم على مدار الساعة", Description: "فريق الدعم جاهز لمساعدتك في أي وقت"},
				},
			},
			Services: SectionHeading{
				Title:    "خدماتنا",
				Subtitle: "اختر الباقة المناسبة لك",
			},
			HowItWorks: StepSection{
				SectionHeading: SectionHeading{
					Title:    "كيف يعمل؟",
					Subtitle: "ثلاث خطوات بسيطة",
				},
				Steps: []Step{
					{Title: "اختر الخدمة", Description: "حدد المنصة والباقة المناسبة"},
					{Title: "أدخل الرابط", Description: "أضف رابط حسابك أو منشورك"},
					{Title: "استلم النتائج", Description: "تابع نمو حسابك مباشرة"},
				},
			},
			Testimonials: TestimonialSection{
				SectionHeading: SectionHeading{
					Title:    "آراء عملائنا",
					Subtitle: "ماذا يقول عملاؤنا عنا",
				},
				Items: []Testimonial{
					{Name: "أحمد", Role: "صانع محتوى", Quote: "خدمة ممتازة وسريعة، أنصح بها بشدة", Rating: 5},
					{Name: "سارة", Role: "صاحبة متجر", Quote: "زاد تفاعل متجري بشكل ملحوظ", Rating: 5},
				},
			},
		},
	}
}
