package rigging

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
)

// .entdef container layout:
//
//	[magic "ENTD"][version uint32 LE][payload length uint32 LE][JSON payload]
var entdefMagic = []byte("ENTD")

// EntdefVersion is the container version this package writes and the highest
// it accepts.
const EntdefVersion = 1

// FormatError reports malformed definition data. Callers that only need
// "unresolvable" treat it like any other load failure; tooling can inspect
// the reason.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return "rigging: invalid definition data: " + e.Reason
	}
	return fmt.Sprintf("rigging: invalid definition file %s: %s", e.Path, e.Reason)
}

// --- JSON document types ---
//
// These mirror the on-disk payload exactly. Sprite and reference parts are
// serialized into separate arrays; a part's variant on load is decided by the
// presence of the entity_ref field, matching files written by older editors
// that used a single body_parts array.

type vecDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type uvDoc struct {
	X      float64 `json:"x" jsonschema:"minimum=0,maximum=1"`
	Y      float64 `json:"y" jsonschema:"minimum=0,maximum=1"`
	Width  float64 `json:"width" jsonschema:"minimum=0,maximum=1"`
	Height float64 `json:"height" jsonschema:"minimum=0,maximum=1"`
}

type hitboxDoc struct {
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Kind    string `json:"hitbox_type" jsonschema:"title=Hitbox type,description=collision/damage/trigger"`
	Shape   int    `json:"shape" jsonschema:"enum=0,enum=1"`
	Radius  int    `json:"radius"`
	Enabled *bool  `json:"enabled,omitempty"`
}

type partDoc struct {
	Name     string      `json:"name"`
	Position vecDoc      `json:"position"`
	Rotation float64     `json:"rotation"`
	ZOrder   int         `json:"z_order"`
	FlipX    bool        `json:"flip_x"`
	FlipY    bool        `json:"flip_y"`
	Hitboxes []hitboxDoc `json:"hitboxes"`
	Size     *vecDoc     `json:"size,omitempty"`
	Visible  *bool       `json:"visible,omitempty"`

	// Sprite fields
	TextureID  string  `json:"texture_id,omitempty"`
	UV         *uvDoc  `json:"uv_rect,omitempty"`
	PixelScale int     `json:"pixel_scale,omitempty" jsonschema:"minimum=1"`
	Pivot      *vecDoc `json:"pivot,omitempty"`

	// Reference fields
	EntityRef   *string `json:"entity_ref,omitempty" jsonschema:"description=Name of the referenced definition"`
	PivotOffset *vecDoc `json:"pivot_offset,omitempty"`
}

// DefinitionDoc models the JSON payload of an .entdef file. Exported so the
// schema generator and external tooling can reflect over the on-disk
// contract.
type DefinitionDoc struct {
	Name       string         `json:"name" jsonschema:"minLength=1,required"`
	Pivot      vecDoc         `json:"pivot"`
	Sprites    []partDoc      `json:"sprites"`
	References []partDoc      `json:"references"`
	Hitboxes   []hitboxDoc    `json:"entity_hitboxes"`
	Version    string         `json:"version"`
	Tags       []string       `json:"tags"`
	Metadata   map[string]any `json:"metadata"`

	// Legacy single-array layout. Written by old editors; never written back.
	BodyParts []partDoc `json:"body_parts,omitempty" jsonschema:"-"`
}

// --- Encoding ---

// Encode serializes a definition into the binary .entdef container.
func Encode(d *Definition) ([]byte, error) {
	doc := DefinitionDoc{
		Name:     d.Name,
		Pivot:    vecDoc{d.Pivot.X, d.Pivot.Y},
		Hitboxes: hitboxesToDoc(d.Hitboxes),
		Version:  d.Version,
		Tags:     d.Tags,
		Metadata: d.Metadata,
	}
	for _, p := range d.Parts {
		switch p.Kind {
		case PartSprite:
			doc.Sprites = append(doc.Sprites, spriteToDoc(p))
		case PartReference:
			doc.References = append(doc.References, referenceToDoc(p))
		}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rigging: failed to encode definition %q: %w", d.Name, err)
	}

	var buf bytes.Buffer
	buf.Write(entdefMagic)
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], EntdefVersion)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))
	buf.Write(header[:])
	buf.Write(payload)
	return buf.Bytes(), nil
}

// SaveDefinition writes a definition to path in .entdef format. It does not
// fire any save notification — that is the editor save routine's contract.
func SaveDefinition(d *Definition, path string) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func spriteToDoc(p *BodyPart) partDoc {
	return partDoc{
		Name:       p.Name,
		Position:   vecDoc{p.Position.X, p.Position.Y},
		Rotation:   p.Rotation,
		ZOrder:     p.ZOrder,
		FlipX:      p.FlipX,
		FlipY:      p.FlipY,
		Hitboxes:   hitboxesToDoc(p.Hitboxes),
		Size:       &vecDoc{p.Size.X, p.Size.Y},
		Visible:    visibleDoc(p.Visible),
		TextureID:  p.TextureID,
		UV:         &uvDoc{p.UV.X, p.UV.Y, p.UV.Width, p.UV.Height},
		PixelScale: p.PixelScale,
		Pivot:      &vecDoc{p.Pivot.X, p.Pivot.Y},
	}
}

func referenceToDoc(p *BodyPart) partDoc {
	ref := p.EntityRef
	return partDoc{
		Name:        p.Name,
		Position:    vecDoc{p.Position.X, p.Position.Y},
		Rotation:    p.Rotation,
		ZOrder:      p.ZOrder,
		FlipX:       p.FlipX,
		FlipY:       p.FlipY,
		Hitboxes:    hitboxesToDoc(p.Hitboxes),
		Size:        &vecDoc{p.Size.X, p.Size.Y},
		Visible:     visibleDoc(p.Visible),
		EntityRef:   &ref,
		PivotOffset: &vecDoc{p.PivotOffset.X, p.PivotOffset.Y},
	}
}

func hitboxesToDoc(hbs []*Hitbox) []hitboxDoc {
	docs := make([]hitboxDoc, 0, len(hbs))
	for _, hb := range hbs {
		d := hitboxDoc{
			Name:   hb.Name,
			X:      hb.X,
			Y:      hb.Y,
			Width:  hb.Width,
			Height: hb.Height,
			Kind:   hb.Kind,
			Shape:  int(hb.Shape),
			Radius: hb.Radius,
		}
		if !hb.Enabled {
			f := false
			d.Enabled = &f
		}
		docs = append(docs, d)
	}
	return docs
}

func visibleDoc(v bool) *bool {
	if v {
		return nil
	}
	return &v
}

// --- Decoding ---

// Decode parses the binary .entdef container. path is used only for error
// reporting and may be empty.
func Decode(data []byte, path string) (*Definition, error) {
	if len(data) < 12 {
		return nil, &FormatError{Path: path, Reason: "truncated header"}
	}
	if !bytes.Equal(data[:4], entdefMagic) {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("magic number mismatch (got %q)", data[:4])}
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version > EntdefVersion {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("unsupported version %d", version)}
	}
	length := binary.LittleEndian.Uint32(data[8:12])
	if int(length) > len(data)-12 {
		return nil, &FormatError{Path: path, Reason: "truncated payload"}
	}

	var doc DefinitionDoc
	if err := json.Unmarshal(data[12:12+length], &doc); err != nil {
		return nil, &FormatError{Path: path, Reason: "invalid JSON payload: " + err.Error()}
	}
	return docToDefinition(&doc), nil
}

// LoadDefinition reads and decodes the definition at path.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rigging: failed to read definition: %w", err)
	}
	return Decode(data, path)
}

func docToDefinition(doc *DefinitionDoc) *Definition {
	d := &Definition{
		Name:     doc.Name,
		Pivot:    Vec2{doc.Pivot.X, doc.Pivot.Y},
		Hitboxes: docToHitboxes(doc.Hitboxes),
		Version:  doc.Version,
		Tags:     doc.Tags,
		Metadata: doc.Metadata,
	}
	if d.Name == "" {
		d.Name = "NewEntity"
	}
	if d.Version == "" {
		d.Version = "1.0"
	}

	parts := doc.Sprites
	parts = append(parts, doc.References...)
	if len(parts) == 0 && len(doc.BodyParts) > 0 {
		parts = doc.BodyParts
	}
	for i := range parts {
		d.Parts = append(d.Parts, docToPart(&parts[i]))
	}
	return d
}

func docToPart(pd *partDoc) *BodyPart {
	size := Vec2{64, 64}
	if pd.Size != nil {
		size = Vec2{pd.Size.X, pd.Size.Y}
	}

	p := &BodyPart{
		Name:     pd.Name,
		Position: Vec2{pd.Position.X, pd.Position.Y},
		Size:     size,
		Rotation: pd.Rotation,
		ZOrder:   pd.ZOrder,
		FlipX:    pd.FlipX,
		FlipY:    pd.FlipY,
		Hitboxes: docToHitboxes(pd.Hitboxes),
		Visible:  pd.Visible == nil || *pd.Visible,
	}
	if p.Name == "" {
		p.Name = "BodyPart"
	}

	if pd.EntityRef != nil {
		p.Kind = PartReference
		p.EntityRef = *pd.EntityRef
		if pd.PivotOffset != nil {
			p.PivotOffset = Vec2{pd.PivotOffset.X, pd.PivotOffset.Y}
		}
		p.PixelScale = 1
		return p
	}

	p.Kind = PartSprite
	p.TextureID = pd.TextureID
	if p.TextureID == "" {
		p.TextureID = "ERROR"
	}
	p.UV = FullUV
	if pd.UV != nil {
		p.UV = UVRect{pd.UV.X, pd.UV.Y, pd.UV.Width, pd.UV.Height}
	}
	p.PixelScale = pd.PixelScale
	if p.PixelScale < 1 {
		p.PixelScale = 1
	}
	if pd.Pivot != nil {
		p.Pivot = Vec2{pd.Pivot.X, pd.Pivot.Y}
	} else {
		p.Pivot = Vec2{size.X / 2, size.Y / 2}
	}
	return p
}

func docToHitboxes(docs []hitboxDoc) []*Hitbox {
	var out []*Hitbox
	for _, hd := range docs {
		hb := &Hitbox{
			Name:    hd.Name,
			X:       hd.X,
			Y:       hd.Y,
			Width:   hd.Width,
			Height:  hd.Height,
			Kind:    hd.Kind,
			Shape:   HitboxShape(hd.Shape),
			Radius:  hd.Radius,
			Enabled: hd.Enabled == nil || *hd.Enabled,
		}
		if hb.Name == "" {
			hb.Name = "Hitbox"
		}
		if hb.Kind == "" {
			hb.Kind = HitboxCollision
		}
		out = append(out, hb)
	}
	return out
}

// --- Schema ---

// Schema returns the JSON schema of the .entdef payload, for validation and
// editor tooling.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.ReflectFromType(reflect.TypeOf(DefinitionDoc{}))
	schema.Title = "Entity Definition"
	schema.Description = "JSON payload carried inside the .entdef binary container."
	return schema
}
