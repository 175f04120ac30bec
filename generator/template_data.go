package generator

// HeaderData contains data for the file header template
type HeaderData struct {
	PackageName string
	// Banner names the generator, e.g. "oastypes (version v1.0.0)"
	Banner string
	// Lines is the file comment above the package clause, if any
	Lines []string
}

// FieldData contains data for a struct field
type FieldData struct {
	Comment []string
	Name    string
	Type    string
	Tag     string
}

// StructData contains data for a struct type
type StructData struct {
	Fields []FieldData
}

// EnumValueData contains data for a single enum constant
type EnumValueData struct {
	ConstName string
	Value     string
}

// EnumData contains data for an enum type
type EnumData struct {
	BaseType string
	Values   []EnumValueData
}

// AliasData contains data for an alias or defined type
type AliasData struct {
	TargetType string
	IsAlias    bool // true for type alias (=), false for defined type
}

// TypeDefinition is one declaration of types.go. Exactly one of Struct, Enum and Alias
// is set, matching Kind.
type TypeDefinition struct {
	Kind     string // "struct", "enum", "alias"
	TypeName string
	Comment  []string

	Struct *StructData
	Enum   *EnumData
	Alias  *AliasData
}

// TypesFileData contains all data for a types.go file
type TypesFileData struct {
	Header HeaderData
	Types  []TypeDefinition
}

// MethodData contains data for one interface method
type MethodData struct {
	Comment []string
	Name    string
	// Params is the rendered parameter list, ctx first
	Params string
	// Results is the rendered result list, e.g. "(Pet, error)" or "error"
	Results string
}

// APIFileData contains all data for a <group>_api.go file
type APIFileData struct {
	Header        HeaderData
	Comment       []string
	InterfaceName string
	Methods       []MethodData
}

// ConstData is a named constant with a rendered value
type ConstData struct {
	Comment string
	Name    string
	Value   string
}

// SecurityEntry maps an interface method to the security schemes it accepts
type SecurityEntry struct {
	Key     string
	Schemes []string
}

// MetadataFileData contains all data for the metadata.go file
type MetadataFileData struct {
	Header          HeaderData
	APIConsts       []ConstData
	GenerationConst []ConstData
	ServersName     string
	Servers         []string
	SecurityName    string
	Security        []SecurityEntry
}
