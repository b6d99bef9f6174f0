package envelope

// Kind identifies which directive form a tag decoded into.
type Kind string

const (
	KindNew    Kind = "New"
	KindPatch  Kind = "Patch"
	KindRename Kind = "Rename"
	KindDelete Kind = "Delete"
	KindMove   Kind = "Move"
	KindCopy   Kind = "Copy"
	KindFail   Kind = "Fail"
)

// Directive is one decoded child of a <FILE_CHANGES> block. Which fields
// are populated depends on Kind: New/Patch use FilePath (and Content/Body
// respectively); Rename/Move/Copy use FromPath/ToPath; Delete uses
// FilePath; Fail carries whatever FilePath could be salvaged plus Reason.
type Directive struct {
	Kind     Kind
	FilePath string
	FromPath string
	ToPath   string
	Content  string
	Body     string
	Reason   string
}
