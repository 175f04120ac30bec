// This file builds the template data for each generated file from the plan.

package generator

import (
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/typemodel"
)

func (p *plan) header(lines ...string) HeaderData {
	return HeaderData{PackageName: p.pkg, Banner: p.g.Info.Banner(), Lines: lines}
}

func (p *plan) typesFile() *TypesFileData {
	data := &TypesFileData{Header: p.header()}
	for _, n := range p.decls {
		var extra []string
		if n.Deprecated {
			extra = append(extra, "Deprecated: this type is deprecated.")
		}
		def := TypeDefinition{TypeName: n.Name, Comment: docComment(n.Name, n.Description, extra...)}

		switch n.Kind {
		case typemodel.DeclObject:
			def.Kind = "struct"
			def.Struct = &StructData{Fields: make([]FieldData, 0, len(n.Fields))}
			for _, f := range n.Fields {
				def.Struct.Fields = append(def.Struct.Fields, p.field(f))
			}
		case typemodel.DeclEnum:
			def.Kind = "enum"
			base := typemodel.Primitive(typemodel.TypeString)
			if n.Base != nil {
				base = *n.Base
			}
			def.Enum = &EnumData{BaseType: p.goType(base)}
			for _, v := range n.Values {
				def.Enum.Values = append(def.Enum.Values, EnumValueData{
					ConstName: p.consts[v],
					Value:     enumLiteral(v.Value),
				})
			}
		case typemodel.DeclAlias:
			def.Kind = "alias"
			target := typemodel.Any()
			if n.Target != nil {
				target = *n.Target
			}
			def.Alias = &AliasData{TargetType: p.goType(target), IsAlias: !p.defined[n.Name]}
		}
		data.Types = append(data.Types, def)
	}
	return data
}

func (p *plan) field(f *typemodel.Field) FieldData {
	fd := FieldData{
		Name: f.Name,
		Type: p.useType(f.Type, f.Nullable || p.cyclic[f]),
		Tag:  structTag(f.WireName, f.Required),
	}
	fd.Comment = commentLines(f.Description)
	if f.Deprecated {
		if len(fd.Comment) > 0 {
			fd.Comment = append(fd.Comment, "")
		}
		fd.Comment = append(fd.Comment, "Deprecated: this field is deprecated.")
	}
	return fd
}

func (p *plan) apiFile(gp groupPlan) *APIFileData {
	grp := gp.group
	comment := commentLines(grp.Description)
	if len(comment) == 0 {
		comment = []string{gp.iface + " groups the operations tagged " + strconv.Quote(grp.Name) + "."}
	} else {
		comment[0] = gp.iface + " " + strings.TrimSpace(comment[0])
	}

	data := &APIFileData{
		Header:        p.header(),
		Comment:       comment,
		InterfaceName: gp.iface,
		Methods:       make([]MethodData, 0, len(grp.Operations)),
	}
	for _, op := range grp.Operations {
		data.Methods = append(data.Methods, MethodData{
			Comment: methodComment(op),
			Name:    op.Name,
			Params:  p.params(op),
			Results: p.results(op),
		})
	}
	return data
}

func methodComment(op *analyzer.Operation) []string {
	var lines []string
	if summary := cleanDescription(op.Summary); summary != "" {
		lines = append(lines, op.Name+" "+summary)
	} else {
		lines = append(lines, op.Name+" calls "+op.Signature()+".")
	}
	if desc := commentLines(op.Description); len(desc) > 0 {
		lines = append(lines, "")
		lines = append(lines, desc...)
	}
	lines = append(lines, "", op.Signature())
	if len(op.Security) > 0 {
		lines = append(lines, "Security: "+strings.Join(op.Security, ", ")+".")
	}
	if op.Deprecated {
		lines = append(lines, "", "Deprecated: this operation is deprecated.")
	}
	return lines
}

// params renders the parameter list: ctx, then parameters in declared order, then the
// body. Form bodies contribute one parameter per field; file parts are streams.
func (p *plan) params(op *analyzer.Operation) string {
	parts := []string{"ctx context.Context"}
	for _, prm := range op.Parameters {
		parts = append(parts, prm.Name+" "+p.useType(prm.Type, !prm.Required))
	}
	if b := op.Body; b != nil {
		switch {
		case b.Encoding.IsForm():
			for _, f := range b.Fields {
				if f.Binary {
					parts = append(parts, f.Name+" io.Reader")
					continue
				}
				parts = append(parts, f.Name+" "+p.useType(f.Type, !f.Required))
			}
		case b.Encoding == analyzer.EncodingJSON:
			parts = append(parts, "body "+p.useType(b.Type, !b.Required))
		default:
			parts = append(parts, "body io.Reader")
		}
	}
	return strings.Join(parts, ", ")
}

func (p *plan) results(op *analyzer.Operation) string {
	r := op.Response
	switch {
	case !r.HasBody():
		return "error"
	case r.Encoding == analyzer.EncodingJSON:
		return "(" + p.useType(r.Type, false) + ", error)"
	default:
		return "(io.ReadCloser, error)"
	}
}

func (p *plan) metadataFile() *MetadataFileData {
	info := p.res.Info
	title := info.Title
	if title == "" {
		title = "the API"
	}
	data := &MetadataFileData{
		Header: p.header("Package " + p.pkg + " declares the types and operations of " + title + "."),
		APIConsts: []ConstData{
			{Comment: "is the title of the API description.", Name: p.metaNames["APITitle"], Value: strconv.Quote(info.Title)},
			{Comment: "is the version of the API description.", Name: p.metaNames["APIVersion"], Value: strconv.Quote(info.Version)},
			{Comment: "is the description of the API.", Name: p.metaNames["APIDescription"], Value: strconv.Quote(info.Description)},
		},
		GenerationConst: []ConstData{
			{Comment: "is when this package was generated.", Name: p.metaNames["GeneratedAt"], Value: strconv.Quote(p.g.Info.Timestamp.UTC().Format(time.RFC1123))},
			{Comment: "is GeneratedAt in Unix seconds.", Name: p.metaNames["GeneratedAtUnix"], Value: strconv.FormatInt(p.g.Info.Timestamp.Unix(), 10)},
			{Comment: "names the tool that generated this package.", Name: p.metaNames["GeneratorInfo"], Value: strconv.Quote(p.g.Info.Banner())},
		},
		ServersName:  p.metaNames["Servers"],
		SecurityName: p.metaNames["OperationSecurity"],
	}
	for _, s := range p.res.Servers {
		data.Servers = append(data.Servers, strconv.Quote(serverURL(s)))
	}
	for _, gp := range p.groups {
		for _, op := range gp.group.Operations {
			if len(op.Security) == 0 {
				continue
			}
			schemes := make([]string, len(op.Security))
			for i, s := range op.Security {
				schemes[i] = strconv.Quote(s)
			}
			data.Security = append(data.Security, SecurityEntry{
				Key:     strconv.Quote(gp.iface + "." + op.Name),
				Schemes: schemes,
			})
		}
	}
	return data
}
