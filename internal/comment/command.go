// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package comment

// Tag names a documentation tag kind.
type Tag string

// Tag kinds.
const (
	TagAuthor      Tag = "author"
	TagBrief       Tag = "brief"
	TagClass       Tag = "class"
	TagDescription Tag = "description"
	TagEvent       Tag = "event"
	TagExample     Tag = "example"
	TagExtends     Tag = "extends"
	TagFile        Tag = "file"
	TagFunction    Tag = "function"
	TagLibrary     Tag = "library"
	TagMemberof    Tag = "memberof"
	TagMethod      Tag = "method"
	TagPage        Tag = "page"
	TagParam       Tag = "param"
	TagProperty    Tag = "property"
	TagReturn      Tag = "return"
	TagSee         Tag = "see"
	TagTodo        Tag = "todo"
	TagVersion     Tag = "version"
)

// Command is the typed result of matching one tag within a block.
type Command interface {
	// Tag returns the tag kind the command was parsed from.
	Tag() Tag
	// Block returns the block the command was found in.
	Block() *Block
	// Line returns the local index of the line holding the tag.
	Line() int
}

// origin links a command back to where it was found.
type origin struct {
	block *Block
	line  int
}

func newOrigin(b *Block, line int) origin {
	if b == nil {
		panic("comment: command constructed without an originating block")
	}
	return origin{block: b, line: line}
}

func (o origin) Block() *Block { return o.block }
func (o origin) Line() int     { return o.line }

// In all commands, optional free text is empty when absent.

// Author is an @author tag naming who wrote the documented code.
type Author struct {
	origin
	Text string
}

// NewAuthor builds the Author command found on line of b.
func NewAuthor(b *Block, line int, text string) *Author {
	return &Author{origin: newOrigin(b, line), Text: text}
}

func (*Author) Tag() Tag { return TagAuthor }

// Brief is a @brief tag: a one-line summary of an entity.
type Brief struct {
	origin
	Text string
}

// NewBrief builds the Brief command found on line of b.
func NewBrief(b *Block, line int, text string) *Brief {
	return &Brief{origin: newOrigin(b, line), Text: text}
}

func (*Brief) Tag() Tag { return TagBrief }

// Class is a @class tag. It starts the documentation of a class.
type Class struct {
	origin
	Name string
}

// NewClass builds the Class command found on line of b.
func NewClass(b *Block, line int, name string) *Class {
	return &Class{origin: newOrigin(b, line), Name: name}
}

func (*Class) Tag() Tag { return TagClass }

// Description is a @description tag. Its text runs until the next tag
// or the end of the block.
type Description struct {
	origin
	Text string
}

// NewDescription builds the Description command found on line of b.
func NewDescription(b *Block, line int, text string) *Description {
	return &Description{origin: newOrigin(b, line), Text: text}
}

func (*Description) Tag() Tag { return TagDescription }

// Event is an @event tag declaring an event a class emits.
type Event struct {
	origin
	Name string
	Text string // optional
}

// NewEvent builds the Event command found on line of b.
func NewEvent(b *Block, line int, name, text string) *Event {
	return &Event{origin: newOrigin(b, line), Name: name, Text: text}
}

func (*Event) Tag() Tag { return TagEvent }

// Example holds the verbatim lines between @example and @endexample.
type Example struct {
	origin
	Text string
}

// NewExample builds the Example command found on line of b.
func NewExample(b *Block, line int, text string) *Example {
	return &Example{origin: newOrigin(b, line), Text: text}
}

func (*Example) Tag() Tag { return TagExample }

// Extends is an @extends tag naming the parent of a class.
type Extends struct {
	origin
	ClassName string
}

// NewExtends builds the Extends command found on line of b.
func NewExtends(b *Block, line int, className string) *Extends {
	return &Extends{origin: newOrigin(b, line), ClassName: className}
}

func (*Extends) Tag() Tag { return TagExtends }

// File is a @file tag. Its block documents the whole source file.
type File struct {
	origin
	Name string
}

// NewFile builds the File command found on line of b.
func NewFile(b *Block, line int, name string) *File {
	return &File{origin: newOrigin(b, line), Name: name}
}

func (*File) Tag() Tag { return TagFile }

// Function is a @function tag declaring a free function.
type Function struct {
	origin
	Name string
	Text string // optional
}

// NewFunction builds the Function command found on line of b.
func NewFunction(b *Block, line int, name, text string) *Function {
	return &Function{origin: newOrigin(b, line), Name: name, Text: text}
}

func (*Function) Tag() Tag { return TagFunction }

// Library is a @library tag naming the documented library.
type Library struct {
	origin
	Name string
}

// NewLibrary builds the Library command found on line of b.
func NewLibrary(b *Block, line int, name string) *Library {
	return &Library{origin: newOrigin(b, line), Name: name}
}

func (*Library) Tag() Tag { return TagLibrary }

// Memberof is a @memberof tag attaching a method, property or event
// defined away from its class to that class.
type Memberof struct {
	origin
	ClassName string
}

// NewMemberof builds the Memberof command found on line of b.
func NewMemberof(b *Block, line int, className string) *Memberof {
	return &Memberof{origin: newOrigin(b, line), ClassName: className}
}

func (*Memberof) Tag() Tag { return TagMemberof }

// Method is a @method tag declaring a method of the current class.
type Method struct {
	origin
	Name string
}

// NewMethod builds the Method command found on line of b.
func NewMethod(b *Block, line int, name string) *Method {
	return &Method{origin: newOrigin(b, line), Name: name}
}

func (*Method) Tag() Tag { return TagMethod }

// Page is a @page tag. The rest of its block is the page content.
type Page struct {
	origin
	Title string
}

// NewPage builds the Page command found on line of b.
func NewPage(b *Block, line int, title string) *Page {
	return &Page{origin: newOrigin(b, line), Title: title}
}

func (*Page) Tag() Tag { return TagPage }

// Param is a @param tag describing one parameter of a function,
// method or event.
type Param struct {
	origin
	Type string
	Name string
	Text string // optional
}

// NewParam builds the Param command found on line of b.
func NewParam(b *Block, line int, typ, name, text string) *Param {
	return &Param{origin: newOrigin(b, line), Type: typ, Name: name, Text: text}
}

func (*Param) Tag() Tag { return TagParam }

// Property is a @property tag declaring a typed class member.
type Property struct {
	origin
	Type string
	Name string
	Text string // optional
}

// NewProperty builds the Property command found on line of b.
func NewProperty(b *Block, line int, typ, name, text string) *Property {
	return &Property{origin: newOrigin(b, line), Type: typ, Name: name, Text: text}
}

func (*Property) Tag() Tag { return TagProperty }

// Return is a @return tag giving the result type of a function or
// method.
type Return struct {
	origin
	Type string
	Text string // optional
}

// NewReturn builds the Return command found on line of b.
func NewReturn(b *Block, line int, typ, text string) *Return {
	return &Return{origin: newOrigin(b, line), Type: typ, Text: text}
}

func (*Return) Tag() Tag { return TagReturn }

// See is a @see tag referring to related documentation.
type See struct {
	origin
	Text string
}

// NewSee builds the See command found on line of b.
func NewSee(b *Block, line int, text string) *See {
	return &See{origin: newOrigin(b, line), Text: text}
}

func (*See) Tag() Tag { return TagSee }

// Todo is a @todo tag recording unfinished work.
type Todo struct {
	origin
	Text string
}

// NewTodo builds the Todo command found on line of b.
func NewTodo(b *Block, line int, text string) *Todo {
	return &Todo{origin: newOrigin(b, line), Text: text}
}

func (*Todo) Tag() Tag { return TagTodo }

// Version is a @version tag, usually of a library.
type Version struct {
	origin
	Text string
}

// NewVersion builds the Version command found on line of b.
func NewVersion(b *Block, line int, text string) *Version {
	return &Version{origin: newOrigin(b, line), Text: text}
}

func (*Version) Tag() Tag { return TagVersion }

var (
	_ Command = (*Author)(nil)
	_ Command = (*Brief)(nil)
	_ Command = (*Class)(nil)
	_ Command = (*Description)(nil)
	_ Command = (*Event)(nil)
	_ Command = (*Example)(nil)
	_ Command = (*Extends)(nil)
	_ Command = (*File)(nil)
	_ Command = (*Function)(nil)
	_ Command = (*Library)(nil)
	_ Command = (*Memberof)(nil)
	_ Command = (*Method)(nil)
	_ Command = (*Page)(nil)
	_ Command = (*Param)(nil)
	_ Command = (*Property)(nil)
	_ Command = (*Return)(nil)
	_ Command = (*See)(nil)
	_ Command = (*Todo)(nil)
	_ Command = (*Version)(nil)
)
