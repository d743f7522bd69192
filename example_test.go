package mdview_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdview"
)

// Example demonstrates basic Markdown rendering.
func Example() {
	r := mdview.New()

	res, err := r.Render(context.Background(), mdview.Request{
		Content: []byte("# Hi\n\n**x**"),
		Type:    mdview.TypeMarkdown,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.HTML)
	// Output:
	// <div class="markdown-content"><h1>Hi</h1>
	// <p><strong>x</strong></p></div>
}

// Example_text demonstrates that plain text is escaped, never interpreted.
func Example_text() {
	res, err := mdview.Render([]byte("a <b>\nc"), mdview.TypeText, mdview.DefaultSizeLimit)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.HTML)
	// Output:
	// <div class="text-content"><p>a &lt;b&gt;<br>
	// c</p></div>
}

// Example_remote demonstrates type resolution for fetched content.
func Example_remote() {
	r := mdview.New()

	res, err := r.Render(context.Background(), mdview.Request{
		Content: []byte(`{"sections":[{"title":"S"}]}`),
		Type:    mdview.TypeRemote,
		Name:    "https://example.com/api/doc",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Type)
	fmt.Println(res.HTML)
	// Output:
	// json
	// <div class="json-content"><h2>S</h2></div>
}

// Example_securityRejection demonstrates handling rejected content.
// The Result still carries a displayable error fragment.
func Example_securityRejection() {
	r := mdview.New()

	res, err := r.Render(context.Background(), mdview.Request{
		Content: []byte("<?php system($_GET['x']); ?>"),
		Type:    mdview.TypeMarkdown,
	})

	var rerr *mdview.RenderError
	if errors.As(err, &rerr) && errors.Is(err, mdview.ErrSecurityRejected) {
		fmt.Println("rejected")
	}
	fmt.Println(res.HTML)
	// Output:
	// rejected
	// <div class="error">Content blocked: potentially dangerous code detected</div>
}

// Example_tooLarge demonstrates the size limit.
func Example_tooLarge() {
	r := mdview.New(mdview.WithSizeLimit(5))

	res, err := r.Render(context.Background(), mdview.Request{
		Content: []byte("0123456789"),
		Type:    mdview.TypeText,
	})
	if errors.Is(err, mdview.ErrContentTooLarge) {
		fmt.Println(res.HTML)
	}
	// Output: <div class="error">Error: content too large (maximum 5 bytes)</div>
}
