package promptgen

import (
	"fmt"
	"strings"
)

// Enricher expands short user descriptions into long-form provider
// instructions. Randomized keyword sections come from the injected Sampler;
// everything else is fixed template text, so callers can rely on the base
// prompt and the requirement blocks always being present verbatim.
type Enricher struct {
	sampler *Sampler
}

func NewEnricher(sampler *Sampler) *Enricher {
	if sampler == nil {
		sampler = NewRandomSampler()
	}
	return &Enricher{sampler: sampler}
}

const logoRequirements = `Key Design Requirements:
- Ultra-high resolution, photorealistic quality where applicable
- Minimalist and sophisticated design approach
- Perfect composition following the golden ratio
- Exceptional attention to detail and craftsmanship
- Professional color harmony using modern color theory
- Masterful use of negative space
- Crystal clear edges and perfect symmetry
- Premium finish with perfect balance

Style Specifications:
- Modern, timeless, and professional
- Clean lines and geometric precision
- Luxurious and high-end aesthetic
- Corporate-ready and scalable
- Perfect for both digital and print media
- Premium brand positioning`

// Logo builds the instruction string for a standalone logo request. Optional
// style and color-scheme selectors are folded into the concept line the same
// way the product UI composes them.
func (e *Enricher) Logo(basePrompt, style, colorScheme string) string {
	concept := strings.TrimSpace(basePrompt)
	if style = strings.TrimSpace(style); style != "" {
		concept += " in " + style + " style"
	}
	if colorScheme = strings.TrimSpace(colorScheme); colorScheme != "" {
		concept += " using " + colorScheme + " color scheme"
	}

	styles := e.sampler.Pick(logoDesignStyles, 2)
	principles := e.sampler.Pick(logoDesignPrinciples, 3)
	colorStrategy := e.sampler.Pick(logoColorStrategies, 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an exceptional, premium quality logo design for: %s.\n", concept)
	fmt.Fprintf(&sb, "Style: %s.\n", strings.Join(styles, ", "))
	fmt.Fprintf(&sb, "Design principles: %s.\n", strings.Join(principles, ", "))
	fmt.Fprintf(&sb, "Color strategy: %s.\n\n", strings.Join(colorStrategy, ", "))
	sb.WriteString(logoRequirements)
	return sb.String()
}

// Banner builds the instruction string for a wide social banner.
func (e *Enricher) Banner(basePrompt string) string {
	keywords := e.sampler.Pick(bannerKeywords, 4)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a visually striking banner for %s. Style: %s.\n\n", strings.TrimSpace(basePrompt), strings.Join(keywords, ", "))
	sb.WriteString(`The banner should be eye-catching and representative of the brand or service, without including any social media logos or interface elements. Focus on creating a design that is:

1. Relevant to the brand concept
2. Visually appealing with a cohesive color scheme
3. Clean and uncluttered
4. Suitable for use as a social media banner (but not specific to any platform)
5. Engaging and professional-looking

Do not include any text, logos, or user interface elements in the image. The design should work well as a standalone banner for any social media platform or website header.`)
	return sb.String()
}

// Tagline builds the instruction string asking the chat model for exactly
// five newline-separated taglines.
func (e *Enricher) Tagline(basePrompt string) string {
	keywords := e.sampler.Pick(taglineKeywords, 3)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate 5 unique taglines for: %s. Style: %s.\n\n", strings.TrimSpace(basePrompt), strings.Join(keywords, ", "))
	sb.WriteString(`Create short, memorable phrases that capture the essence of the brand or product. Each tagline should be:
- No more than 5-7 words
- Easy to understand
- Emotionally resonant
- Unique and memorable
- Aligned with brand values

Provide exactly 5 taglines, each on a new line. Do not include any numbering, explanations, or additional text.`)
	return sb.String()
}

// TechnicalRequirements is the fixed trailer appended to every engineered
// premium logo brief after the optional LLM upgrade step.
const TechnicalRequirements = `Technical Requirements:
- Ultra-high resolution (1024x1024)
- Vector-quality rendering
- Professional material simulation
- Premium color science
- Perfect contrast ratios
- High-end finish quality
- Sophisticated lighting
- Dimensional depth
- Premium market positioning`

// EngineerBrief assembles the premium design brief from the larger keyword
// pools. The result is either sent to an LLM for a paraphrase upgrade or,
// when no text provider is available, used directly as the image prompt.
func (e *Enricher) EngineerBrief(concept string) string {
	sections := []struct {
		heading string
		pool    []string
		k       int
	}{
		{"Design Principles", premiumDesignPrinciples, 3},
		{"Visual Style", premiumVisualStyles, 2},
		{"Composition", premiumCompositions, 2},
		{"Premium Aesthetics", premiumAesthetics, 3},
		{"Brand Symbolism", premiumSymbolism, 2},
		{"Market Positioning", premiumPositioning, 2},
		{"Visual Effects", premiumEffects, 2},
		{"Material Language", premiumMaterials, 2},
	}

	var sb strings.Builder
	sb.WriteString("Create an exceptional, premium-quality brand mark:\n\n")
	fmt.Fprintf(&sb, "Brand Concept: %s\n\n", strings.TrimSpace(concept))
	sb.WriteString(`Design Foundation:
- Ultra-premium brand identity
- Distinctive market positioning
- Sophisticated visual language
- Memorable brand mark
- Future-proof design system`)
	for _, sec := range sections {
		fmt.Fprintf(&sb, "\n\n%s:", sec.heading)
		for _, item := range e.sampler.Pick(sec.pool, sec.k) {
			fmt.Fprintf(&sb, "\n- %s", item)
		}
	}
	return sb.String()
}

// EngineerSystemPrompt instructs the upgrade LLM during the premium path.
const EngineerSystemPrompt = `You are an expert brand identity designer specializing in creating exceptional, premium-quality logos. Your expertise lies in transforming simple concepts into sophisticated, memorable brand marks that command premium value. Your task is to:

1. Analyze the brand essence and market positioning
2. Identify unique visual opportunities
3. Apply advanced design principles
4. Create distinctive, ownable visual elements
5. Ensure premium market differentiation

Transform the input into a detailed, premium logo design specification that justifies high-end pricing.`

// NameListPrompt builds the naming-expert prompt used by the brand-name
// endpoint. The model is asked for exactly five names, one per line.
func NameListPrompt(description, category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		category = "technology"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a Silicon Valley naming expert who has named numerous successful startups. Create 5 powerful, trendy brand names similar to Netflix, Apple, Amazon, Google, Meta, Nvidia, Zepto, and Zomato.\n\n")
	fmt.Fprintf(&sb, "For this %s startup:\n%s\n\n", category, strings.TrimSpace(description))
	sb.WriteString(`Name Style Guidelines:
1. Memorable & Distinctive: create names as memorable as "Google" or "Netflix", with creative letter combinations and rhythmic sounds.
2. Modern Tech Aesthetic: strong consonants, considered vowel patterns, abstract yet meaningful like "Meta".
3. Structural Requirements: maximum 2-3 syllables, natural in phrases, works as a .com domain and an app icon, easy to pronounce globally.
4. Brand Power: should feel established and trustworthy, with potential to become a household name across products.

Format Requirements:
- Return exactly 5 names
- One per line
- Names only, no explanations
- Each name should be completely unique
- Must be suitable for a modern tech company`)
	fmt.Fprintf(&sb, "\n\nCreate names with similar power and appeal, perfectly suited for %s.", category)
	return sb.String()
}

// SingleNamePrompt builds the prompt used during brand-asset fan-out when
// the caller did not supply a custom brand name.
func SingleNamePrompt(description, targetAudience string) string {
	var sb strings.Builder
	sb.WriteString("Generate a unique and memorable brand name based on the following criteria:\n\n")
	fmt.Fprintf(&sb, "Business Description: %s\n", strings.TrimSpace(description))
	if targetAudience = strings.TrimSpace(targetAudience); targetAudience != "" {
		fmt.Fprintf(&sb, "Target Audience: %s\n", targetAudience)
	}
	sb.WriteString(`
Requirements:
- Name should be 1-2 words maximum
- Must be easy to pronounce and spell
- Should be memorable and distinctive
- Avoid generic terms
- Must not include platform-specific terms (e.g., "tube", "gram", etc.)
- Should work across all social media platforms
- Must not infringe on well-known brands

Return only the brand name, nothing else.`)
	return sb.String()
}
