package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizesScript(t *testing.T) {
	html := string(RenderMarkdown("hello <script>alert(1)</script> world"))
	if strings.Contains(html, "<script>") {
		t.Errorf("script tag must be stripped, got %q", html)
	}
	if !strings.Contains(html, "hello") {
		t.Errorf("text content lost: %q", html)
	}
}

func TestRenderMarkdownEnhancesImages(t *testing.T) {
	html := string(RenderMarkdown("![pic](https://example.com/a.png)"))
	if !strings.Contains(html, "<img") {
		t.Fatalf("image not rendered: %q", html)
	}
	if !strings.Contains(html, `loading="lazy"`) {
		t.Errorf("img should carry loading=lazy: %q", html)
	}
	if !strings.Contains(html, `referrerpolicy="no-referrer"`) {
		t.Errorf("img should carry referrerpolicy: %q", html)
	}
}

func TestRenderMarkdownBasicFormatting(t *testing.T) {
	html := string(RenderMarkdown("**bold** and [link](https://example.com)"))
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", html)
	}
	if !strings.Contains(html, `href="https://example.com"`) {
		t.Errorf("link not rendered: %q", html)
	}
}
