/*
Package markdbg implements helpers to debug marks.

Dump prints the state style table of a mark as a tree:

	bar #1 (rect)
	├── normal
	│   ├── fill [userSeries] scaled(category)
	│   └── x [default] 0
	└── hover
	    └── fill [userMark] → #2

ToGraphViz draws the referer relations between the marks of a registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/vstyle/mark"
	"github.com/xlab/treeprint"
)

// Dump returns a tree view of the state table of m, followed by the
// extension channels of its type.
func Dump(m *mark.Mark) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s #%d (%s)", m.Name(), m.ID(), m.Type().Name()))
	table := m.Table()
	for _, state := range table.States() {
		branch := tree.AddBranch(state)
		for _, attr := range table.Attributes(state) {
			s, _ := table.Slot(state, attr)
			branch.AddNode(slotText(attr, s))
		}
	}
	if primaries := m.Type().Primaries(); len(primaries) > 0 {
		branch := tree.AddBranch("channels")
		for _, p := range primaries {
			branch.AddNode(p + " → " + strings.Join(m.Type().ExtensionChannels(p), ", "))
		}
	}
	return tree.String()
}

func slotText(attr string, s *mark.Slot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] ", attr, s.Level)
	if s.Referer != mark.NoMark {
		fmt.Fprintf(&b, "→ #%d", s.Referer)
	} else {
		b.WriteString(shortText(s.Style.String(), 40))
	}
	if s.PostProcess != nil {
		b.WriteString(" +post")
	}
	return b.String()
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

type node struct {
	Name string
	Mark string
	Type string
}

type edge struct {
	From, To string
	Label    string
}

// ToGraphViz outputs a diagram of the marks of a registry and their referer
// relations, in GraphViz (DOT) format. Edges are labeled with the delegated
// attributes, prefixed by their state unless it is the normal state.
func ToGraphViz(reg *mark.Registry, w io.Writer) error {
	gparams := graphParamsType{Fontname: "Helvetica"}
	head := template.Must(template.New("marks").Parse(graphHeadTmpl))
	gparams.NodeTmpl = template.Must(template.New("marknode").Funcs(
		template.FuncMap{
			"shortstring": func(s string) string {
				return strings.ReplaceAll(shortText(s, 24), `"`, `\"`)
			},
		}).Parse(markNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("markedge").Parse(markEdgeTmpl))
	if err := head.Execute(w, gparams); err != nil {
		return err
	}
	marks := reg.Marks()
	for _, m := range marks {
		n := node{Name: nodeName(m.ID()), Mark: m.Name(), Type: m.Type().Name()}
		if err := gparams.NodeTmpl.Execute(w, n); err != nil {
			return err
		}
	}
	for _, m := range marks {
		for _, e := range referers(m) {
			if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// referers collects the referer edges of a mark, one per target.
func referers(m *mark.Mark) []edge {
	labels := make(map[mark.ID][]string)
	table := m.Table()
	for _, state := range table.States() {
		for _, attr := range table.Attributes(state) {
			s, _ := table.Slot(state, attr)
			if s.Referer == mark.NoMark {
				continue
			}
			if state != mark.StateNormal {
				attr = state + "." + attr
			}
			labels[s.Referer] = append(labels[s.Referer], attr)
		}
	}
	targets := make([]mark.ID, 0, len(labels))
	for id := range labels {
		targets = append(targets, id)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	edges := make([]edge, len(targets))
	for i, id := range targets {
		edges[i] = edge{
			From:  nodeName(m.ID()),
			To:    nodeName(id),
			Label: strings.Join(labels[id], ", "),
		}
	}
	return edges
}

func nodeName(id mark.ID) string {
	return fmt.Sprintf("mark%05d", id)
}

func shortText(s string, max int) string {
	if len(s) > max {
		s = s[:max-3] + "..."
	}
	return s
}

// Dotty is a helper for testing. Given a registry and a testing.T, it will
// create a GraphViz image of the referer relations and write it to a file
// in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(reg *mark.Registry, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "marks.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing mark digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(reg, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

// --- Templates --------------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14 shape=box style="rounded,filled" fillcolor=lightblue3] ;
   edge [fontname = "{{ .Fontname }}" fontsize=11] ;
`

const markNodeTmpl = `{{ .Name }}	[ label="{{ shortstring .Mark }}\n{{ .Type }}" ] ;
`

const markEdgeTmpl = `{{ .From }} -> {{ .To }} [ label="{{ .Label }}" weight=1 ] ;
`
