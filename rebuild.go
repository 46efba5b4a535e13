package scfile

// rebuilder holds the collections produced by Rebuild until they are
// committed to the document.
type rebuilder struct {
	textures   []*Texture
	shapes     []*Shape
	textFields []*TextField
	modifiers  []*Modifier
	clips      []*MovieClip
	banks      []*Bank

	visited map[Object]bool
	assign  map[*MovieClip]int

	// Transforms registered with each bank.
	matrices []map[*Matrix]bool
	colors   []map[*ColorTransform]bool
}

// Rebuild reconstructs the derived collections of the document from its
// movie clips. Shapes, text fields, modifiers, and banks are discarded and
// repopulated by walking each movie clip depth-first, visiting each object
// once. Textures of bitmaps and movie clips found among binds are appended
// when not already present. Each movie clip is assigned a bank with
// AllocateBank, and the distinct transforms referred to by its frames are
// registered with that bank.
//
// Objects are compared by identity. Two structurally equal matrices remain
// distinct bank entries unless the same instance is referred to.
//
// If an error occurs, the document is left unmodified.
func (doc *Document) Rebuild() error {
	r := &rebuilder{
		textures: append([]*Texture(nil), doc.Textures...),
		clips:    append([]*MovieClip(nil), doc.MovieClips...),
		visited:  map[Object]bool{},
		assign:   map[*MovieClip]int{},
	}
	for i := 0; i < len(r.clips); i++ {
		if err := r.visit(r.clips[i]); err != nil {
			return err
		}
	}
	if len(r.banks) == 0 {
		r.banks = append(r.banks, &Bank{})
	}

	doc.Textures = r.textures
	doc.Shapes = r.shapes
	doc.TextFields = r.textFields
	doc.Modifiers = r.modifiers
	doc.MovieClips = r.clips
	doc.Banks = r.banks
	for clip, bank := range r.assign {
		clip.Bank = bank
	}
	return nil
}

func (r *rebuilder) visit(obj Object) error {
	if r.visited[obj] {
		return nil
	}
	r.visited[obj] = true

	switch obj := obj.(type) {
	case *Modifier:
		r.modifiers = append(r.modifiers, obj)

	case *TextField:
		r.textFields = append(r.textFields, obj)

	case *Shape:
		for i, b := range obj.Bitmaps {
			if err := b.check(); err != nil {
				return BitmapError{Shape: obj.ID, Index: i, Cause: err}
			}
			r.addTexture(b.Texture)
		}
		r.shapes = append(r.shapes, obj)

	case *MovieClip:
		r.addClip(obj)
		for i, bind := range obj.Binds {
			if bind.Object == nil {
				return BindError{Clip: obj.ID, Index: i, Cause: ErrNilBind}
			}
			if err := r.visit(bind.Object); err != nil {
				return err
			}
		}
		return r.allocate(obj)
	}
	return nil
}

func (r *rebuilder) addTexture(t *Texture) {
	for _, v := range r.textures {
		if v == t {
			return
		}
	}
	r.textures = append(r.textures, t)
}

func (r *rebuilder) addClip(mc *MovieClip) {
	for _, v := range r.clips {
		if v == mc {
			return
		}
	}
	r.clips = append(r.clips, mc)
}

func (r *rebuilder) allocate(mc *MovieClip) error {
	matrices, colors := mc.transforms()

	var i int
	var err error
	r.banks, i, err = AllocateBank(r.banks, len(matrices), len(colors))
	if err != nil {
		if e, ok := err.(BankOverflowError); ok {
			e.Clip = mc.ID
			err = e
		}
		return err
	}
	for len(r.matrices) < len(r.banks) {
		r.matrices = append(r.matrices, map[*Matrix]bool{})
		r.colors = append(r.colors, map[*ColorTransform]bool{})
	}
	r.assign[mc] = i

	bank := r.banks[i]
	for _, m := range matrices {
		if !r.matrices[i][m] {
			r.matrices[i][m] = true
			bank.Matrices = append(bank.Matrices, m)
		}
	}
	for _, c := range colors {
		if !r.colors[i][c] {
			r.colors[i][c] = true
			bank.ColorTransforms = append(bank.ColorTransforms, c)
		}
	}
	return nil
}
