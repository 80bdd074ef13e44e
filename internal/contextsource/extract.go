// Package contextsource derives a ProductContext from a product landing
// page: fetch the page, strip boilerplate markup, and ask a model to pull
// out the structured marketing fields.
package contextsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// maxWords caps how much page text reaches the extraction prompt.
const maxWords = 2000

const fetchTimeout = 10 * time.Second

// Browser-ish UA; several landing pages serve empty shells to default
// Go client strings.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var extractionSchema = llm.MustSchema("product_context", `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"target_audience": {"type": "string"},
		"pain_point": {"type": "string"},
		"key_benefit": {"type": "string"}
	},
	"required": ["name", "target_audience", "pain_point", "key_benefit"]
}`)

const extractionSystemPrompt = `You are an expert marketing analyst specializing in extracting key product information from landing pages.

Your task is to analyze the provided landing page text and extract the following information:
1. Product/Company Name: The main product or company name
2. Target Audience: Who is this product for? Be specific about demographics, roles, or user types.
3. Pain Point: What problem or pain point does this product solve? What are customers struggling with?
4. Key Benefit: What is the primary value proposition or benefit? What makes this product valuable?

Be precise and concise. Extract only information that is clearly stated or strongly implied in the text.
If information is not available, make reasonable inferences based on the content, but be clear about what is inferred.

Output ONLY a JSON object with the fields "name", "target_audience", "pain_point", and "key_benefit".`

// Extractor pulls product context out of landing pages.
type Extractor struct {
	client     llm.Client
	httpClient *http.Client
}

// NewExtractor builds an Extractor. A nil httpClient gets a default with
// the fetch timeout applied.
func NewExtractor(client llm.Client, httpClient *http.Client) *Extractor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: fetchTimeout}
	}
	return &Extractor{client: client, httpClient: httpClient}
}

// Extract fetches the landing page at rawURL and returns the product
// context the page describes. Extraction runs at low temperature: the call
// is analytical, not creative.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (domain.ProductContext, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.ProductContext{}, fmt.Errorf("invalid url %q", rawURL)
	}

	text, err := e.fetchText(ctx, rawURL)
	if err != nil {
		return domain.ProductContext{}, err
	}

	var out struct {
		Name           string `json:"name"`
		TargetAudience string `json:"target_audience"`
		PainPoint      string `json:"pain_point"`
		KeyBenefit     string `json:"key_benefit"`
	}
	err = llm.GenerateInto(ctx, e.client, &llm.Request{
		SystemPrompt: extractionSystemPrompt,
		UserPrompt: fmt.Sprintf("Analyze the following landing page content and extract the product marketing information:\n\n%s\n\nExtract the product name, target audience, pain point, and key benefit as JSON.", text),
		Schema:      extractionSchema,
		Temperature: 0.3,
		TopP:        0.9,
		MaxTokens:   512,
	}, &out)
	if err != nil {
		return domain.ProductContext{}, fmt.Errorf("context extraction: %w", err)
	}

	pc := domain.ProductContext{
		Name:           out.Name,
		TargetAudience: out.TargetAudience,
		PainPoint:      out.PainPoint,
		KeyBenefit:     out.KeyBenefit,
	}
	if err := pc.Validate(); err != nil {
		return domain.ProductContext{}, fmt.Errorf("context extraction: %w", err)
	}
	return pc, nil
}

// fetchText downloads the page and reduces it to capped plain text.
func (e *Extractor) fetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", rawURL, err)
	}

	return ExtractText(strings.NewReader(string(body)), maxWords)
}

// ExtractText strips script, style, and navigation chrome from an HTML
// document and returns its visible text, truncated to at most maxWords
// whitespace-separated words.
func ExtractText(r io.Reader, maxWords int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, nav, footer, header").Remove()

	words := strings.Fields(doc.Text())
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " "), nil
}
