package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewdef/pkg/document"
)

const petService = `
openapi: 3.0.3
info:
  title: Pet service
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
    post:
      operationId: createPet
      summary: Register a pet
      description: Adds a pet to the registry.
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  minLength: 1
                  maxLength: 60
                kind:
                  type: string
                  default: dog
                  enum: [dog, cat, bird]
      responses:
        "201":
          description: Created
  /pets/{petId}:
    put:
      operationId: updatePet
      summary: Update a pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "200":
          description: OK
`

func TestConvertDerivesScreenPerBodyOperation(t *testing.T) {
	doc, err := Convert(context.Background(), []byte(petService), Options{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(doc.Screens) != 2 {
		t.Fatalf("Convert() derived %d screens, want 2", len(doc.Screens))
	}

	create, ok := doc.Screens["create_pet"]
	if !ok {
		t.Fatalf("Convert() missing screen create_pet, got keys %v", screenKeys(doc))
	}
	if create.Title != "Register a pet" {
		t.Errorf("create_pet title = %q, want %q", create.Title, "Register a pet")
	}
	if create.Description != "Adds a pet to the registry." {
		t.Errorf("create_pet description = %q", create.Description)
	}
	if len(create.Actions) != 2 {
		t.Fatalf("create_pet has %d actions, want 2", len(create.Actions))
	}
	submit := create.Actions[0]
	if submit.Type != document.ActionSubmit || submit.Endpoint != "/pets" || submit.Method != "POST" {
		t.Errorf("submit action = %+v, want submit for POST /pets", submit)
	}
	if submit.Style != document.ActionStylePrimary {
		t.Errorf("submit style = %q, want primary", submit.Style)
	}
	if reset := create.Actions[1]; reset.Type != document.ActionReset || reset.Style != document.ActionStyleSecondary {
		t.Errorf("reset action = %+v", reset)
	}

	if _, ok := doc.Screens["update_pet"]; !ok {
		t.Errorf("Convert() missing screen update_pet, got keys %v", screenKeys(doc))
	}
}

func TestConvertFieldMapping(t *testing.T) {
	const spec = `
openapi: 3.0.3
info:
  title: Registry
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: registerPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                adopted:
                  type: boolean
                age:
                  type: integer
                  minimum: 0
                  maximum: 30
                birthday:
                  type: string
                  format: date
                email:
                  type: string
                  format: email
                  maxLength: 120
                kind:
                  type: string
                  default: dog
                  enum: [dog, cat, bird]
                name:
                  type: string
                  description: Call name of the pet.
                  minLength: 1
                  maxLength: 60
                owner:
                  type: object
                  required: [name]
                  properties:
                    email:
                      type: string
                      format: email
                    name:
                      type: string
                photo:
                  type: string
                  format: binary
                tags:
                  type: array
                  maxItems: 5
                  items:
                    type: string
                visits:
                  type: array
                  items:
                    type: object
                    properties:
                      clinic:
                        type: string
                      date:
                        type: string
                        format: date
                website:
                  type: string
                  format: uri
                weight:
                  type: number
                  minimum: 0
      responses:
        "201":
          description: Created
`
	doc, err := Convert(context.Background(), []byte(spec), Options{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	screen, ok := doc.Screens["register_pet"]
	if !ok {
		t.Fatalf("Convert() missing screen register_pet, got keys %v", screenKeys(doc))
	}

	want := []document.InputField{
		{ID: "adopted", Type: document.FieldToggle, Label: "Adopted"},
		{ID: "age", Type: document.FieldNumber, Label: "Age", Number: &document.NumberConfig{Min: floatp(0), Max: floatp(30), Step: floatp(1)}},
		{ID: "birthday", Type: document.FieldDate, Label: "Birthday"},
		{ID: "email", Type: document.FieldEmail, Label: "Email", Text: &document.TextConfig{MaxLength: intp(120)}},
		{ID: "kind", Type: document.FieldSelect, Label: "Kind", Default: "dog", Options: []document.Option{
			{Value: "dog", Label: "dog"},
			{Value: "cat", Label: "cat"},
			{Value: "bird", Label: "bird"},
		}},
		{ID: "name", Type: document.FieldText, Label: "Name", HelpText: "Call name of the pet.", Required: true, Text: &document.TextConfig{MinLength: intp(1), MaxLength: intp(60)}},
		{ID: "owner.email", Type: document.FieldEmail, Label: "Email"},
		{ID: "owner.name", Type: document.FieldText, Label: "Name", Required: true},
		{ID: "photo", Type: document.FieldFileUpload, Label: "Photo"},
		{ID: "tags", Type: document.FieldRepeater, Label: "Tags", Repeater: &document.RepeaterConfig{
			ItemFields: []document.InputField{{ID: "tags_item", Type: document.FieldText, Label: "Tags Item"}},
			MaxItems:   intp(5),
		}},
		{ID: "visits", Type: document.FieldRepeater, Label: "Visits", Repeater: &document.RepeaterConfig{
			ItemFields: []document.InputField{
				{ID: "clinic", Type: document.FieldText, Label: "Clinic"},
				{ID: "date", Type: document.FieldDate, Label: "Date"},
			},
		}},
		{ID: "website", Type: document.FieldURL, Label: "Website"},
		{ID: "weight", Type: document.FieldNumber, Label: "Weight", Number: &document.NumberConfig{Min: floatp(0)}},
	}
	if diff := cmp.Diff(want, screen.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertFallsBackToMethodPathKey(t *testing.T) {
	const spec = `
openapi: 3.0.3
info:
  title: Keyless
  version: 1.0.0
paths:
  /pets:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "201":
          description: Created
`
	doc, err := Convert(context.Background(), []byte(spec), Options{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	screen, ok := doc.Screens["post_pets"]
	if !ok {
		t.Fatalf("Convert() keys = %v, want post_pets", screenKeys(doc))
	}
	if screen.Title != "POST /pets" {
		t.Errorf("fallback title = %q, want %q", screen.Title, "POST /pets")
	}
}

func TestConvertSuffixesDuplicateKeys(t *testing.T) {
	const spec = `
openapi: 3.0.3
info:
  title: Clashing
  version: 1.0.0
paths:
  /a:
    post:
      operationId: addItem
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "201":
          description: Created
  /b:
    post:
      operationId: addItem
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                title:
                  type: string
      responses:
        "201":
          description: Created
`
	doc, err := Convert(context.Background(), []byte(spec), Options{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	first, ok := doc.Screens["add_item"]
	if !ok {
		t.Fatalf("Convert() keys = %v, want add_item", screenKeys(doc))
	}
	second, ok := doc.Screens["add_item_2"]
	if !ok {
		t.Fatalf("Convert() keys = %v, want add_item_2", screenKeys(doc))
	}
	// Paths walk in lexical order, so /a claims the bare slug.
	if len(first.Fields) == 0 || first.Fields[0].ID != "name" {
		t.Errorf("add_item fields = %v, want the /a body", fieldIDs(first.Fields))
	}
	if len(second.Fields) == 0 || second.Fields[0].ID != "title" {
		t.Errorf("add_item_2 fields = %v, want the /b body", fieldIDs(second.Fields))
	}
}

func TestConvertRejectsUnusableDocuments(t *testing.T) {
	cases := map[string]struct {
		payload string
		want    string
	}{
		"empty payload": {
			payload: "",
			want:    "payload is empty",
		},
		"no paths": {
			payload: "openapi: 3.0.3\ninfo: {title: Empty, version: 1.0.0}\npaths: {}\n",
			want:    "does not contain any paths",
		},
		"no request bodies": {
			payload: `
openapi: 3.0.3
info:
  title: ReadOnly
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
`,
			want: "no operation accepts a request body",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Convert(context.Background(), []byte(tc.payload), Options{})
			if err == nil {
				t.Fatalf("Convert() succeeded, want error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Convert() error = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestConvertSurvivesRecursiveSchemas(t *testing.T) {
	const spec = `{
  "openapi": "3.0.0",
  "info": {"title": "Cycle", "version": "1.0.0"},
  "paths": {
    "/nodes": {
      "post": {
        "operationId": "createNode",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {"$ref": "#/components/schemas/Node"}
            }
          }
        },
        "responses": {"201": {"description": "Created"}}
      }
    }
  },
  "components": {
    "schemas": {
      "Node": {
        "type": "object",
        "properties": {
          "child": {"$ref": "#/components/schemas/Node"},
          "label": {"type": "string"}
        }
      }
    }
  }
}`
	doc, err := Convert(context.Background(), []byte(spec), Options{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	screen, ok := doc.Screens["create_node"]
	if !ok {
		t.Fatalf("Convert() keys = %v, want create_node", screenKeys(doc))
	}
	if len(screen.Fields) == 0 {
		t.Fatalf("create_node has no fields")
	}
	// The self reference flattens until the depth ceiling, never forever.
	for _, field := range screen.Fields {
		if strings.Count(field.ID, ".") > maxSchemaDepth {
			t.Fatalf("field %q exceeds the schema depth ceiling", field.ID)
		}
	}
}

func TestConvertHonorsCustomLabeler(t *testing.T) {
	shout := func(name string) string { return strings.ToUpper(name) }
	doc, err := Convert(context.Background(), []byte(petService), Options{Labeler: shout})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	screen, ok := doc.Screens["create_pet"]
	if !ok {
		t.Fatalf("Convert() keys = %v, want create_pet despite the custom labeler", screenKeys(doc))
	}
	for _, field := range screen.Fields {
		if field.ID == "name" && field.Label != "NAME" {
			t.Errorf("name label = %q, want the custom labeler applied", field.Label)
		}
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"name":        "Name",
		"first_name":  "First Name",
		"user-id":     "User Id",
		"createdAt":   "Created At",
		"APIKey":      "Apikey",
		"version2":    "Version 2",
		"  spaced  ":  "Spaced",
		"ownerEmail":  "Owner Email",
		"max_retries": "Max Retries",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func screenKeys(doc *document.Document) []string {
	keys := make([]string, 0, len(doc.Screens))
	for key := range doc.Screens {
		keys = append(keys, key)
	}
	return keys
}

func fieldIDs(fields []document.InputField) []string {
	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		ids = append(ids, field.ID)
	}
	return ids
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
