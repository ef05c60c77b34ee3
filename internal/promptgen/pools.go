package promptgen

// Keyword pools feeding the randomized sections of each enrichment template.
// Subset sizes are fixed per field; selection is unordered and without
// replacement.

var logoDesignStyles = []string{
	"minimalist", "abstract", "geometric", "organic", "futuristic",
	"retro", "hand-drawn", "typography-based", "symbol-based", "dynamic",
}

var logoDesignPrinciples = []string{
	"innovative", "memorable", "scalable", "versatile", "simple yet meaningful",
	"unique silhouette", "clever concept", "balanced composition",
}

var logoColorStrategies = []string{
	"monochromatic", "complementary colors", "analogous colors", "triadic colors",
	"gradient", "black and white with an accent color",
}

var bannerKeywords = []string{
	"eye-catching", "vibrant", "cohesive", "balanced", "on-brand",
	"engaging", "modern", "clean", "dynamic", "impactful",
	"storytelling", "harmonious", "striking", "professional", "polished",
	"inviting", "attention-grabbing", "themed", "consistent", "visually appealing",
}

var taglineKeywords = []string{
	"catchy", "memorable", "concise", "impactful", "clever",
	"emotive", "brand-centric", "benefit-focused", "unique", "inspiring",
	"persuasive", "rhythmic", "alliterative", "witty", "powerful",
}

// Pools for the premium engineering path. Each entry lists the pool and the
// fixed subset size drawn from it.

var premiumDesignPrinciples = []string{
	"golden ratio harmony", "dynamic balance", "sacred geometry",
	"negative space mastery", "visual weight distribution", "modular grid system",
	"mathematical precision", "optical perfection", "gestalt principles",
}

var premiumVisualStyles = []string{
	"avant-garde minimalism", "corporate futurism", "timeless sophistication",
	"geometric abstraction", "organic fluidity", "brutalist elegance",
	"neo-modernist", "premium reductionism", "dynamic simplicity",
}

var premiumCompositions = []string{
	"asymmetric balance", "radial harmony", "golden spiral flow",
	"dynamic tension", "sacred proportions", "fibonacci sequence",
	"rule of thirds mastery", "dynamic symmetry", "modular scaling",
}

var premiumAesthetics = []string{
	"ultra-premium finish", "luxury materiality", "dimensional depth",
	"light interaction", "shadow interplay", "textural richness",
	"visual hierarchy", "contrast dynamics", "tonal sophistication",
}

var premiumSymbolism = []string{
	"conceptual abstraction", "metaphorical elements", "symbolic resonance",
	"archetypal forms", "cultural significance", "universal symbols",
	"emotional triggers", "psychological impact", "brand storytelling",
}

var premiumPositioning = []string{
	"luxury market positioning", "high-end brand language", "premium visual codes",
	"exclusive aesthetic", "sophisticated appeal", "upmarket presence",
	"elite brand identity", "prestigious symbolism", "refined elegance",
}

var premiumEffects = []string{
	"dimensional layering", "subtle gradients", "metallic accents",
	"light refraction", "depth mapping", "texture mapping",
	"environmental reflection", "material simulation", "optical illusion",
}

var premiumMaterials = []string{
	"brushed metal", "polished chrome", "matte finish",
	"glass effect", "ceramic texture", "premium substrate",
	"marble essence", "carbon fiber", "precious materials",
}

// NegativePrompt is the fixed denylist sent alongside every image prompt.
// Providers that support a dedicated negative-prompt field receive it there
// rather than inside the main prompt.
const NegativePrompt = "text, words, letters, watermark, signature, low quality, blurry, pixelated, amateur, unprofessional, busy, cluttered, childish, cartoon, sketchy, hand-drawn, distorted, unbalanced, asymmetrical, poor composition, basic, generic, template-like, stock-image-like, dated, old-fashioned, trendy, gimmicky, complex, overwhelming, noisy, messy, unrefined"

// BannerNegativePrompt keeps social chrome and text artefacts out of banner renders.
const BannerNegativePrompt = "blur, pixelated, low quality, text overlap, Twitter logo, Facebook logo, social media logos, user interface, text, words, letters, watermark, signature, blurry, low quality"
