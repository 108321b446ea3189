package document

// The allow-lists below are the single source of truth shared by the
// structural validator and the shape normalizer. They are compiled-in
// constants: nothing mutates them after init.

var knownFieldTypes = map[FieldType]struct{}{
	FieldText:         {},
	FieldEmail:        {},
	FieldPassword:     {},
	FieldTel:          {},
	FieldURL:          {},
	FieldNumber:       {},
	FieldTextarea:     {},
	FieldRichText:     {},
	FieldSelect:       {},
	FieldMultiSelect:  {},
	FieldCombobox:     {},
	FieldRadioGroup:   {},
	FieldCheckbox:     {},
	FieldCheckboxGrp:  {},
	FieldToggle:       {},
	FieldSlider:       {},
	FieldRating:       {},
	FieldDate:         {},
	FieldTime:         {},
	FieldDateTime:     {},
	FieldDateRange:    {},
	FieldDuration:     {},
	FieldColor:        {},
	FieldFileUpload:   {},
	FieldImageUpload:  {},
	FieldPhotoManager: {},
	FieldMapEmbed:     {},
	FieldSignature:    {},
	FieldRepeater:     {},
	FieldDataTable:    {},
	FieldHidden:       {},
	FieldLabel:        {},
	FieldBadge:        {},
	FieldHeading:      {},
	FieldParagraph:    {},
	FieldDivider:      {},
	FieldSpacer:       {},
	FieldImage:        {},
	FieldProgress:     {},
	FieldTimeline:     {},
	FieldKeyValue:     {},
}

// selectLikeTypes require a non-empty option list or a reference string.
// combobox is deliberately absent: it may resolve options from a remote
// source at render time.
var selectLikeTypes = map[FieldType]struct{}{
	FieldSelect:      {},
	FieldMultiSelect: {},
	FieldRadioGroup:  {},
	FieldCheckboxGrp: {},
}

// presentationTypes are exempt from the id/label requirement. badge and
// key_value stay out of the set because they bind to screen data and need
// an id to do so.
var presentationTypes = map[FieldType]struct{}{
	FieldLabel:     {},
	FieldHeading:   {},
	FieldParagraph: {},
	FieldDivider:   {},
	FieldSpacer:    {},
	FieldImage:     {},
	FieldProgress:  {},
	FieldTimeline:  {},
}

var knownActionTypes = map[ActionType]struct{}{
	ActionSubmit:   {},
	ActionNavigate: {},
	ActionCustom:   {},
	ActionReset:    {},
}

// KnownFieldType reports whether t is part of the closed field-type set.
func KnownFieldType(t FieldType) bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// SelectLike reports whether fields of type t must carry options.
func SelectLike(t FieldType) bool {
	_, ok := selectLikeTypes[t]
	return ok
}

// PresentationOnly reports whether t is exempt from the id/label
// requirement.
func PresentationOnly(t FieldType) bool {
	_, ok := presentationTypes[t]
	return ok
}

// ValidActionType reports whether t is part of the fixed action-type enum.
func ValidActionType(t ActionType) bool {
	_, ok := knownActionTypes[t]
	return ok
}
