package classpath

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/stackb/classifier-resolver/pkg/classifier"
	"github.com/stackb/classifier-resolver/pkg/protobuf"
)

// Entry is one class of an index file.
type Entry struct {
	ID             classifier.ClassID
	Kind           classifier.Kind
	TypeParameters []string
	Supertypes     []classifier.ClassID
}

// EntriesOf flattens classes and their nested classes into entries, ordered
// by id.
func EntriesOf(classes []*classifier.Class) []*Entry {
	var entries []*Entry
	for _, class := range classes {
		class.Walk(func(c *classifier.Class) {
			entry := &Entry{
				ID:             c.ID,
				Kind:           c.Kind,
				TypeParameters: c.TypeParameters,
			}
			for _, super := range c.Supertypes() {
				entry.Supertypes = append(entry.Supertypes, super.ID)
			}
			entries = append(entries, entry)
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID.String() < entries[j].ID.String()
	})
	return entries
}

// ReadIndexFile reads the entries of an index file.  The encoding follows the
// file extension (see package protobuf).
func ReadIndexFile(filename string) ([]*Entry, error) {
	var index structpb.Struct
	if err := protobuf.ReadFile(filename, &index); err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}
	entries, err := decodeEntries(&index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return entries, nil
}

// WriteIndexFile writes entries to an index file.
func WriteIndexFile(filename string, entries []*Entry) error {
	index, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	if err := protobuf.WriteFile(filename, index); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}

// LoadFile reads an index file onto the classpath.  Supertypes are assigned
// by Link.
func (x *Index) LoadFile(filename string) error {
	entries, err := ReadIndexFile(filename)
	if err != nil {
		return err
	}
	if err := x.Load(entries); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	x.logger.Debug().Str("file", filename).Int("classes", len(entries)).Msg("loaded index file")
	return nil
}

// Load builds classes from entries and puts them on the classpath.  Every
// nested entry needs the entry of its outer class.  Supertypes are assigned
// by Link.
func (x *Index) Load(entries []*Entry) error {
	classes := make(map[classifier.ClassID]*classifier.Class, len(entries))
	for _, entry := range entries {
		if entry.ID.Name == "" {
			return fmt.Errorf("index entry has no class name: %+v", entry)
		}
		class := classifier.NewClass(entry.ID, entry.Kind)
		class.TypeParameters = entry.TypeParameters
		classes[entry.ID] = class
		if len(entry.Supertypes) > 0 {
			x.unlinked[class] = entry.Supertypes
		}
	}

	// attach nested classes outermost first so that Walk in PutClass sees
	// complete trees
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].ID.Name) < len(sorted[j].ID.Name)
	})

	var topLevel []*classifier.Class
	for _, entry := range sorted {
		class := classes[entry.ID]
		outerID, nested := entry.ID.Outer()
		if !nested {
			topLevel = append(topLevel, class)
			continue
		}
		outer, ok := classes[outerID]
		if !ok {
			return fmt.Errorf("outer class %s of %s: %w", outerID, entry.ID, ErrClassNotFound)
		}
		if err := outer.AddNested(class); err != nil {
			return err
		}
	}

	for _, class := range topLevel {
		x.PutClass(class)
	}
	return nil
}

func encodeEntries(entries []*Entry) (*structpb.Struct, error) {
	classes := make([]interface{}, len(entries))
	for i, entry := range entries {
		class := map[string]interface{}{
			"id":   entry.ID.String(),
			"kind": string(entry.Kind),
		}
		if len(entry.TypeParameters) > 0 {
			class["typeParameters"] = stringList(entry.TypeParameters)
		}
		if len(entry.Supertypes) > 0 {
			supertypes := make([]string, len(entry.Supertypes))
			for j, id := range entry.Supertypes {
				supertypes[j] = id.String()
			}
			class["supertypes"] = stringList(supertypes)
		}
		classes[i] = class
	}
	index, err := structpb.NewStruct(map[string]interface{}{"classes": classes})
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return index, nil
}

func decodeEntries(index *structpb.Struct) ([]*Entry, error) {
	values := index.GetFields()["classes"].GetListValue().GetValues()
	entries := make([]*Entry, 0, len(values))
	for i, value := range values {
		fields := value.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("classes[%d]: not an object", i)
		}
		id := fields["id"].GetStringValue()
		if id == "" {
			return nil, fmt.Errorf("classes[%d]: missing id", i)
		}
		entry := &Entry{
			ID:             classifier.ParseClassID(id),
			Kind:           classifier.Kind(fields["kind"].GetStringValue()),
			TypeParameters: stringValues(fields["typeParameters"]),
		}
		if entry.Kind == "" {
			entry.Kind = classifier.KindClass
		}
		for _, super := range stringValues(fields["supertypes"]) {
			entry.Supertypes = append(entry.Supertypes, classifier.ParseClassID(super))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func stringList(values []string) []interface{} {
	list := make([]interface{}, len(values))
	for i, v := range values {
		list[i] = v
	}
	return list
}

func stringValues(value *structpb.Value) []string {
	var values []string
	for _, v := range value.GetListValue().GetValues() {
		values = append(values, v.GetStringValue())
	}
	return values
}
