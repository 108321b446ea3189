package document

// Screen resolves a screen by its safe key. The boolean reports whether the
// screen exists.
func (d *Document) Screen(key string) (ScreenDefinition, bool) {
	if d == nil {
		return ScreenDefinition{}, false
	}
	screen, ok := d.Screens[key]
	return screen, ok
}

// FieldByID resolves a field by id anywhere in the screen: the flat field
// list, every section, every wizard step, and recursively the item fields
// of repeaters. The first match in document order wins.
func (s ScreenDefinition) FieldByID(id string) (InputField, bool) {
	if id == "" {
		return InputField{}, false
	}
	if field, ok := findFieldByID(s.Fields, id); ok {
		return field, ok
	}
	for _, section := range s.Sections {
		if field, ok := findFieldByID(section.Fields, id); ok {
			return field, ok
		}
	}
	if s.Wizard != nil {
		for _, step := range s.Wizard.Steps {
			if field, ok := findFieldByID(step.Fields, id); ok {
				return field, ok
			}
		}
	}
	return InputField{}, false
}

func findFieldByID(fields []InputField, id string) (InputField, bool) {
	for _, field := range fields {
		if field.ID == id {
			return field, true
		}
		if field.Repeater != nil {
			if nested, ok := findFieldByID(field.Repeater.ItemFields, id); ok {
				return nested, ok
			}
		}
	}
	return InputField{}, false
}
