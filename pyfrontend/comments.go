package pyfrontend

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
)

// CommentSink receives one callback per lexical comment token found in a
// file, in source order (spec 4.J): the comment's exact text, its 1-based
// inclusive region, and the translation unit it belongs to. The sink
// decides how (or whether) to attach a comment to a nearby declaration;
// the translator itself never inspects comment content.
type CommentSink func(text string, region cpg.Location, root *cpg.TranslationUnit)

// runCommentHook walks the whole parse tree once, after the statement
// translation pass has finished, and invokes sink once per comment token.
// A nil sink makes this a no-op, matching a caller that has no external
// comment matcher wired up.
func (t *Translator) runCommentHook(root *sitter.Node, tu *cpg.TranslationUnit) {
	if t.commentSink == nil || root == nil {
		return
	}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "comment" {
			region := t.locationOf(n)
			// locationOf's end column is exclusive; comment regions are inclusive.
			region.EndCol--
			t.commentSink(t.text(n), region, tu)
		}
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}
