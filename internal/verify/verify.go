package verify

import (
	"context"
	"strings"
	"unicode"
)

// TextExtractor pulls raw text out of a remote image. The OCR client
// satisfies it.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageURL string) (string, error)
}

// Result reports how well the rendered image matches the expected text.
type Result struct {
	IsValid        bool   `json:"isValid"`
	TextPresent    bool   `json:"textPresent"`
	SpellingErrors bool   `json:"spellingErrors"`
	ExtractedText  string `json:"extractedText"`
}

// Verifier checks whether an expected brand text actually appears, correctly
// spelled, in a generated image.
type Verifier struct {
	extractor TextExtractor
}

func NewVerifier(extractor TextExtractor) *Verifier {
	return &Verifier{extractor: extractor}
}

// VerifyImage runs OCR on the image and compares the result against the
// expected text. Transport failures from the extractor pass through so the
// caller can distinguish "unverifiable" from "invalid".
func (v *Verifier) VerifyImage(ctx context.Context, imageURL, expected string) (*Result, error) {
	extracted, err := v.extractor.ExtractText(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return Evaluate(expected, extracted), nil
}

// Evaluate compares expected text against OCR output. The comparison is
// deliberately lenient about casing, punctuation, and spacing, since OCR
// output of stylized logo typography is noisy.
func Evaluate(expected, extracted string) *Result {
	cleanExpected := cleanText(expected)
	cleanExtracted := cleanText(extracted)

	present := isTextPresent(cleanExpected, cleanExtracted)
	misspelled := hasSpellingErrors(expected, cleanExtracted)

	return &Result{
		IsValid:        present && !misspelled,
		TextPresent:    present,
		SpellingErrors: misspelled,
		ExtractedText:  strings.TrimSpace(extracted),
	}
}

// cleanText lowercases and strips everything that is not a letter or digit.
func cleanText(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isTextPresent(cleanExpected, cleanExtracted string) bool {
	if cleanExpected == "" {
		return false
	}
	if cleanExtracted != "" &&
		(strings.Contains(cleanExtracted, cleanExpected) || strings.Contains(cleanExpected, cleanExtracted)) {
		return true
	}
	// Longer texts pass on character overlap, which tolerates OCR dropping
	// or reordering a few glyphs.
	if len(cleanExpected) > 3 {
		matching := 0
		for _, r := range cleanExpected {
			if strings.ContainsRune(cleanExtracted, r) {
				matching++
			}
		}
		return float64(matching)/float64(len([]rune(cleanExpected))) >= 0.7
	}
	return false
}

// hasSpellingErrors reports whether any significant expected word is missing
// from the extracted text. Words shorter than three characters are skipped,
// stylized logos routinely drop them.
func hasSpellingErrors(expected, cleanExtracted string) bool {
	for _, word := range strings.Fields(expected) {
		cleanWord := cleanText(word)
		if len(cleanWord) < 3 {
			continue
		}
		if !strings.Contains(cleanExtracted, cleanWord) {
			return true
		}
	}
	return false
}
