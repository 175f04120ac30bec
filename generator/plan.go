package generator

import (
	"fmt"
	"runtime"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/naming"
	"github.com/erraggy/oastypes/typemodel"
	"golang.org/x/sync/errgroup"
)

// groupPlan is the emitted form of one operation group.
type groupPlan struct {
	group *analyzer.Group
	iface string
	file  string
}

// plan holds every naming and pointer decision for one package before any file is
// rendered, so files can be rendered independently.
type plan struct {
	g   *Generator
	res *analyzer.Result
	pkg string

	decls  []*typemodel.Named
	byName map[string]*typemodel.Named
	// defined holds aliases emitted as defined types
	defined map[string]bool
	// cyclic holds required by-value fields that close a containment cycle
	cyclic map[*typemodel.Field]bool
	consts map[*typemodel.EnumValue]string
	scope  map[string]bool

	groups      []groupPlan
	metaNames   map[string]string
	issues      issues.List
	methodCount int
}

func newPlan(g *Generator, res *analyzer.Result, pkg string) *plan {
	p := &plan{
		g:         g,
		res:       res,
		pkg:       pkg,
		decls:     res.AllNamedTypes(),
		byName:    make(map[string]*typemodel.Named),
		defined:   make(map[string]bool),
		cyclic:    make(map[*typemodel.Field]bool),
		consts:    make(map[*typemodel.EnumValue]string),
		scope:     make(map[string]bool),
		metaNames: make(map[string]string),
	}
	for _, n := range p.decls {
		p.byName[n.Name] = n
		p.scope[n.Name] = true
	}
	p.planAliases()
	p.planCycles()
	p.planConstants()
	p.planGroups()
	p.planMetadata()
	return p
}

// claim reserves the first free identifier derived from base in the package scope.
func (p *plan) claim(base string) string {
	name := naming.Disambiguate(base, func(s string) bool { return p.scope[s] })
	p.scope[name] = true
	return name
}

func (p *plan) planAliases() {
	for _, n := range p.decls {
		if n.Kind != typemodel.DeclAlias {
			continue
		}
		switch {
		case p.selfReferential(n):
			p.defined[n.Name] = true
			p.issues.Add(SeverityInfo, n.Pointer,
				"%s refers to itself and is emitted as a defined type", n.Name)
		case p.g.DefinedTypes:
			p.defined[n.Name] = true
		}
	}
}

// selfReferential reports whether n can reach itself through alias targets alone. Such
// an alias is not legal Go.
func (p *plan) selfReferential(n *typemodel.Named) bool {
	if n.Target == nil {
		return false
	}
	seen := make(map[string]bool)
	var walk func(t typemodel.Type) bool
	walk = func(t typemodel.Type) bool {
		found := false
		t.References(func(id string) {
			if found {
				return
			}
			if id == n.Name {
				found = true
				return
			}
			d := p.byName[id]
			if d == nil || d.Kind != typemodel.DeclAlias || d.Target == nil || seen[id] {
				return
			}
			seen[id] = true
			found = walk(*d.Target)
		})
		return found
	}
	return walk(*n.Target)
}

// planCycles finds the required, non-nullable fields that embed an object from their own
// strongly connected component and marks them for pointer indirection.
func (p *plan) planCycles() {
	type edge struct {
		field  *typemodel.Field
		target string
	}
	edges := make(map[string][]edge)
	for _, n := range p.decls {
		if n.Kind != typemodel.DeclObject {
			continue
		}
		for _, f := range n.Fields {
			if f.Nullable {
				continue
			}
			if target := p.valueTarget(f.Type); target != "" {
				edges[n.Name] = append(edges[n.Name], edge{f, target})
			}
		}
	}

	// Tarjan's algorithm over object declarations.
	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	component := make(map[string]int)
	var stack []string
	next, comps := 0, 0

	var connect func(v string)
	connect = func(v string) {
		index[v], low[v] = next, next
		next++
		stack = append(stack, v)
		onStack[v] = true
		for _, e := range edges[v] {
			if _, visited := index[e.target]; !visited {
				connect(e.target)
				low[v] = min(low[v], low[e.target])
			} else if onStack[e.target] {
				low[v] = min(low[v], index[e.target])
			}
		}
		if low[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component[w] = comps
				if w == v {
					break
				}
			}
			comps++
		}
	}
	for _, n := range p.decls {
		if _, visited := index[n.Name]; n.Kind == typemodel.DeclObject && !visited {
			connect(n.Name)
		}
	}

	for from, es := range edges {
		for _, e := range es {
			if component[from] == component[e.target] {
				p.cyclic[e.field] = true
			}
		}
	}
}

func (p *plan) planConstants() {
	for _, n := range p.decls {
		if n.Kind != typemodel.DeclEnum {
			continue
		}
		for _, v := range n.Values {
			p.consts[v] = p.claim(n.Name + v.Name)
		}
	}
}

func (p *plan) planGroups() {
	files := make(map[string]bool)
	for _, grp := range p.res.OperationsByGroup() {
		base := naming.ToSnakeCase(grp.Identifier)
		if base == "" {
			base = analyzer.DefaultGroup
		}
		file := naming.Disambiguate(base, func(s string) bool { return files[s] })
		files[file] = true
		p.groups = append(p.groups, groupPlan{
			group: grp,
			iface: p.claim(grp.Identifier + "API"),
			file:  file + "_api.go",
		})
		p.methodCount += len(grp.Operations)
	}
}

// metadataIdentifiers are the package-level names metadata.go declares, in order.
var metadataIdentifiers = []string{
	"APITitle", "APIVersion", "APIDescription",
	"GeneratedAt", "GeneratedAtUnix", "GeneratorInfo",
	"Servers", "OperationSecurity",
}

func (p *plan) planMetadata() {
	for _, id := range metadataIdentifiers {
		p.metaNames[id] = p.claim(id)
	}
}

// fileJob is one file to render.
type fileJob struct {
	name     string
	template string
	data     any
	items    int
}

func (p *plan) jobs() []fileJob {
	var jobs []fileJob
	if len(p.decls) > 0 {
		jobs = append(jobs, fileJob{"types.go", "types", p.typesFile(), len(p.decls)})
	}
	for _, gp := range p.groups {
		jobs = append(jobs, fileJob{gp.file, "api", p.apiFile(gp), len(gp.group.Operations)})
	}
	meta := p.metadataFile()
	return append(jobs, fileJob{"metadata.go", "metadata", meta, len(meta.Security)})
}

// render executes every file template concurrently. Files keep plan order.
func (p *plan) render() ([]GeneratedFile, error) {
	jobs := p.jobs()
	files := make([]GeneratedFile, len(jobs))
	fmtErrs := make([]error, len(jobs))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		eg.Go(func() error {
			content, fmtErr, err := executeTemplate(job.template, job.name, job.data, job.items)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", job.name, err)
			}
			files[i] = GeneratedFile{Name: job.name, Content: content}
			fmtErrs[i] = fmtErr
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, err := range fmtErrs {
		if err != nil {
			p.issues.Add(SeverityWarning, jobs[i].name, "output left unformatted: %v", err)
		}
	}
	for _, f := range files {
		p.g.log().Debug("rendered file", "file", f.Name, "bytes", len(f.Content))
	}
	return files, nil
}
