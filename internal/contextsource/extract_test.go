package contextsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agmi-labs/creative-engine/internal/llm"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Acme Notes</title>
  <style>body { color: red; }</style>
  <script>console.log("tracking");</script>
</head>
<body>
  <header>Site header chrome</header>
  <nav>Home | Pricing | Blog</nav>
  <main>
    <h1>Acme Notes</h1>
    <p>Instant recall for every snippet you have ever written.</p>
    <p>Built for developers drowning in scattered notes.</p>
  </main>
  <footer>Copyright Acme</footer>
</body>
</html>`

func TestExtractText(t *testing.T) {
	t.Run("strips chrome and code", func(t *testing.T) {
		text, err := ExtractText(strings.NewReader(samplePage), 2000)

		require.NoError(t, err)
		assert.Contains(t, text, "Instant recall")
		assert.Contains(t, text, "drowning in scattered notes")
		assert.NotContains(t, text, "tracking")
		assert.NotContains(t, text, "color: red")
		assert.NotContains(t, text, "Site header chrome")
		assert.NotContains(t, text, "Pricing")
		assert.NotContains(t, text, "Copyright")
	})

	t.Run("caps word count", func(t *testing.T) {
		long := "<body><p>" + strings.Repeat("word ", 500) + "</p></body>"
		text, err := ExtractText(strings.NewReader(long), 100)

		require.NoError(t, err)
		assert.Len(t, strings.Fields(text), 100)
	})
}

// clientFunc adapts a function to llm.Client.
type clientFunc func(ctx context.Context, req *llm.Request) (*llm.Response, error)

func (f clientFunc) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	t.Run("returns the extracted context", func(t *testing.T) {
		var prompt string
		client := clientFunc(func(ctx context.Context, req *llm.Request) (*llm.Response, error) {
			prompt = req.UserPrompt
			return &llm.Response{Content: []byte(`{
				"name": "Acme Notes",
				"target_audience": "developers",
				"pain_point": "scattered notes",
				"key_benefit": "instant recall"
			}`)}, nil
		})
		e := NewExtractor(client, srv.Client())

		pc, err := e.Extract(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "Acme Notes", pc.Name)
		assert.Equal(t, "developers", pc.TargetAudience)
		// The page text, not the raw HTML, reaches the model.
		assert.Contains(t, prompt, "Instant recall")
		assert.NotContains(t, prompt, "<html>")
	})

	t.Run("rejects invalid urls", func(t *testing.T) {
		e := NewExtractor(nil, nil)
		_, err := e.Extract(context.Background(), "not a url")
		require.Error(t, err)
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer bad.Close()

		e := NewExtractor(nil, bad.Client())
		_, err := e.Extract(context.Background(), bad.URL)
		require.Error(t, err)
	})
}
