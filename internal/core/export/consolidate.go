package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Consolidate inlines every local stylesheet link as a <style> block and
// every local image as a base64 data URI. Relative references resolve
// against baseDir, not the working directory; HTMLExporter passes its
// template directory so templates stay portable. Remote (http, https, //)
// and data: references are left untouched. A missing local file fails with
// ErrAssetNotFound.
func Consolidate(markup, baseDir string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	if err := inlineAssets(doc, baseDir); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

func inlineAssets(n *html.Node, baseDir string) error {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling

		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Link:
				if strings.EqualFold(attr(c, "rel"), "stylesheet") && isLocal(attr(c, "href")) {
					css, err := readAsset(baseDir, attr(c, "href"))
					if err != nil {
						return err
					}
					n.InsertBefore(styleNode(string(css)), c)
					n.RemoveChild(c)
				}
			case atom.Img:
				if src := attr(c, "src"); isLocal(src) {
					data, err := readAsset(baseDir, src)
					if err != nil {
						return err
					}
					setAttr(c, "src", dataURI(src, data))
				}
			}
		}

		if c.Parent != nil {
			if err := inlineAssets(c, baseDir); err != nil {
				return err
			}
		}
		c = next
	}
	return nil
}

func styleNode(css string) *html.Node {
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: "type", Val: "text/css"}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	return style
}

func dataURI(src string, data []byte) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(src)))
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func readAsset(baseDir, ref string) ([]byte, error) {
	path := filepath.FromSlash(strings.TrimPrefix(ref, "file://"))
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetNotFound, ref, err)
	}
	return data, nil
}

// isLocal reports whether ref points at a file rather than a remote or
// inline resource.
func isLocal(ref string) bool {
	if ref == "" {
		return false
	}
	lower := strings.ToLower(ref)
	for _, prefix := range []string{"data:", "http://", "https://", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
