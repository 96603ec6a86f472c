package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldProjectID is the standardized structured logging key for project identifiers.
	FieldProjectID = "project_id"
	// FieldSourceID is the standardized structured logging key for source file identifiers.
	FieldSourceID = "source_id"
	// FieldConversionID is the standardized structured logging key for conversion identifiers.
	FieldConversionID = "conversion_id"
	// FieldCutID is the standardized structured logging key for video cut identifiers.
	FieldCutID = "cut_id"
	// FieldPath is the standardized structured logging key for filesystem paths.
	FieldPath = "path"
	// FieldPercent is the standardized structured logging key for progress percentages.
	FieldPercent = "percent"
)
