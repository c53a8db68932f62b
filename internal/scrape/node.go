package scrape

import (
    "strings"

    "golang.org/x/net/html"
)

// nextText returns the sibling immediately after n when it is a text node.
func nextText(n *html.Node) *html.Node {
    if n == nil || n.NextSibling == nil {
        return nil
    }
    if n.NextSibling.Type != html.TextNode {
        return nil
    }
    return n.NextSibling
}

// firstText returns the first child of n when it is a text node.
func firstText(n *html.Node) *html.Node {
    if n == nil || n.FirstChild == nil || n.FirstChild.Type != html.TextNode {
        return nil
    }
    return n.FirstChild
}

// nodeText concatenates every text node beneath n, including n itself.
func nodeText(n *html.Node) string {
    var b strings.Builder
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if cur.Type == html.TextNode {
            b.WriteString(cur.Data)
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
        }
    }
    dfs(n)
    return b.String()
}
