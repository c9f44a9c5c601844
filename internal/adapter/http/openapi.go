package adapthttp

import (
	"html/template"
	"net/http"

	"gopkg.in/yaml.v3"

	"inventoried/internal/domain"
	"inventoried/internal/openapi"
)

// newDocument builds the OpenAPI shell: info, servers, tags, shared
// schemas and the OAuth2 security scheme. Route operations are added as
// the routing table is built.
func (s *Server) newDocument() *openapi.Document {
	doc := openapi.New(openapi.Info{
		Title:       "Inventoried API",
		Version:     "1.0.0",
		Description: "API for managing items in inventory",
	})

	serverDesc := "Development server"
	if s.cfg.Environment == "production" {
		serverDesc = "Production server"
	}
	doc.Servers = []openapi.Server{{URL: s.cfg.BaseURL, Description: serverDesc}}

	doc.Tags = []openapi.Tag{
		{Name: "Items", Description: "The items managing API"},
		{Name: "Users", Description: "The users managing API"},
	}

	doc.Components = &openapi.Components{
		Schemas: map[string]*openapi.Schema{
			"Item":            itemSchema(),
			"ItemInput":       itemInputSchema(true),
			"ItemUpdate":      itemInputSchema(false),
			"User":            userSchema(),
			"UserInput":       userInputSchema(true),
			"UserUpdate":      userInputSchema(false),
			"Error":           errorSchema(),
			"ValidationError": validationErrorSchema(),
		},
		SecuritySchemes: map[string]openapi.SecurityScheme{
			"googleOAuth": {
				Type: "oauth2",
				Flows: &openapi.OAuthFlows{
					AuthorizationCode: &openapi.OAuthFlow{
						AuthorizationURL: "https://accounts.google.com/o/oauth2/v2/auth",
						TokenURL:         "https://oauth2.googleapis.com/token",
						Scopes: map[string]string{
							"openid":  "OpenID Connect",
							"profile": "Basic profile",
							"email":   "Email address",
						},
					},
				},
			},
		},
	}

	if s.oauth.Enabled {
		doc.Security = []map[string][]string{{"googleOAuth": {"openid", "profile", "email"}}}
	}
	return doc
}

func itemSchema() *openapi.Schema {
	in := itemInputSchema(true)
	in.Properties["_id"] = &openapi.Schema{Type: "string", Description: "The auto-generated id of the item"}
	in.Properties["createdAt"] = &openapi.Schema{Type: "string", Format: "date-time"}
	in.Properties["updatedAt"] = &openapi.Schema{Type: "string", Format: "date-time"}
	return in
}

func itemInputSchema(required bool) *openapi.Schema {
	sch := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name": {
				Type:      "string",
				MinLength: openapi.IntPtr(2),
				MaxLength: openapi.IntPtr(100),
			},
			"description": {
				Type:      "string",
				MinLength: openapi.IntPtr(5),
				MaxLength: openapi.IntPtr(500),
			},
			"price": {
				Type:    "number",
				Minimum: openapi.Float64Ptr(0),
			},
			"category": {
				Type: "string",
				Enum: domain.Categories,
			},
			"stock": {
				Type:    "integer",
				Minimum: openapi.Float64Ptr(0),
			},
		},
		Example: map[string]any{
			"name":        "iPhone 13",
			"description": "Latest Apple smartphone with advanced features",
			"price":       999.99,
			"category":    "Electronics",
			"stock":       50,
		},
	}
	if required {
		sch.Required = []string{"name", "description", "price", "category", "stock"}
	}
	return sch
}

func userSchema() *openapi.Schema {
	in := userInputSchema(true)
	in.Properties["_id"] = &openapi.Schema{Type: "string", Description: "The auto-generated id of the user"}
	in.Properties["createdAt"] = &openapi.Schema{Type: "string", Format: "date-time"}
	in.Properties["updatedAt"] = &openapi.Schema{Type: "string", Format: "date-time"}
	return in
}

func userInputSchema(required bool) *openapi.Schema {
	sch := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"username": {
				Type:      "string",
				MinLength: openapi.IntPtr(3),
				MaxLength: openapi.IntPtr(30),
			},
			"email": {
				Type:   "string",
				Format: "email",
			},
			"role": {
				Type:    "string",
				Enum:    domain.Roles,
				Default: domain.DefaultRole,
			},
		},
	}
	if required {
		sch.Required = []string{"username", "email"}
	}
	return sch
}

func errorSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"success": {Type: "boolean"},
			"error":   {Type: "string"},
			"message": {Type: "string"},
		},
	}
}

func validationErrorSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"error": {Type: "string"},
			"details": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"field":   {Type: "string"},
						"message": {Type: "string"},
					},
				},
			},
		},
	}
}

func jsonContent(schema *openapi.Schema) map[string]openapi.MediaType {
	return map[string]openapi.MediaType{"application/json": {Schema: schema}}
}

func idParameter(kind string) openapi.Parameter {
	return openapi.Parameter{
		Name:        "id",
		In:          "path",
		Required:    true,
		Description: "The " + kind + " id",
		Schema:      &openapi.Schema{Type: "string"},
	}
}

func listOp(tag, summary, schema string) openapi.Operation {
	return openapi.Operation{
		Summary: summary,
		Tags:    []string{tag},
		Responses: map[string]openapi.Response{
			"200": {
				Description: "The list of records",
				Content: jsonContent(&openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"success": {Type: "boolean"},
						"count":   {Type: "integer"},
						"data":    {Type: "array", Items: openapi.Ref(schema)},
					},
				}),
			},
			"500": {Description: "Server error", Content: jsonContent(openapi.Ref("Error"))},
		},
	}
}

func getOp(tag, summary, schema, kind string) openapi.Operation {
	return openapi.Operation{
		Summary:    summary,
		Tags:       []string{tag},
		Parameters: []openapi.Parameter{idParameter(kind)},
		Responses: map[string]openapi.Response{
			"200": {Description: "The record", Content: jsonContent(openapi.Ref(schema))},
			"400": {Description: "Invalid id", Content: jsonContent(openapi.Ref("ValidationError"))},
			"404": {Description: "Not found", Content: jsonContent(openapi.Ref("Error"))},
			"500": {Description: "Server error", Content: jsonContent(openapi.Ref("Error"))},
		},
	}
}

func createOp(tag, summary, schema, input string) openapi.Operation {
	return openapi.Operation{
		Summary: summary,
		Tags:    []string{tag},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content:  jsonContent(openapi.Ref(input)),
		},
		Responses: map[string]openapi.Response{
			"201": {Description: "Created", Content: jsonContent(openapi.Ref(schema))},
			"400": {Description: "Validation error", Content: jsonContent(openapi.Ref("ValidationError"))},
			"500": {Description: "Server error", Content: jsonContent(openapi.Ref("Error"))},
		},
	}
}

func updateOp(tag, summary, schema, input, kind string) openapi.Operation {
	return openapi.Operation{
		Summary:    summary,
		Tags:       []string{tag},
		Parameters: []openapi.Parameter{idParameter(kind)},
		RequestBody: &openapi.RequestBody{
			Content: jsonContent(openapi.Ref(input)),
		},
		Responses: map[string]openapi.Response{
			"200": {Description: "Updated", Content: jsonContent(openapi.Ref(schema))},
			"400": {Description: "Validation error", Content: jsonContent(openapi.Ref("ValidationError"))},
			"404": {Description: "Not found", Content: jsonContent(openapi.Ref("Error"))},
			"500": {Description: "Server error", Content: jsonContent(openapi.Ref("Error"))},
		},
	}
}

func deleteOp(tag, summary, schema, kind string) openapi.Operation {
	return openapi.Operation{
		Summary:    summary,
		Tags:       []string{tag},
		Parameters: []openapi.Parameter{idParameter(kind)},
		Responses: map[string]openapi.Response{
			"200": {Description: "Deleted", Content: jsonContent(openapi.Ref(schema))},
			"400": {Description: "Invalid id", Content: jsonContent(openapi.Ref("ValidationError"))},
			"404": {Description: "Not found", Content: jsonContent(openapi.Ref("Error"))},
			"500": {Description: "Server error", Content: jsonContent(openapi.Ref("Error"))},
		},
	}
}

func (s *Server) handleOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.doc)
}

func (s *Server) handleOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	out, err := yaml.Marshal(s.doc)
	if err != nil {
		s.storeError(w, "Failed to render documentation", err)
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleSwaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = swaggerUITmpl.Execute(w, map[string]any{"LoginEnabled": s.oauth.Enabled})
}

var swaggerUITmpl = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Inventoried API - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui.css" />
</head>
<body>
{{if .LoginEnabled}}<div style="text-align:right;padding:8px"><a href="/auth/swagger-login">Log in with Google</a></div>{{end}}
<div id="swagger-ui"></div>

<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui-bundle.js" charset="UTF-8"></script>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui-standalone-preset.js" charset="UTF-8"></script>
<script>
window.onload = function() {
  window.ui = SwaggerUIBundle({
    url: "/api-docs/openapi.json",
    dom_id: '#swagger-ui',
    deepLinking: true,
    presets: [
      SwaggerUIBundle.presets.apis,
      SwaggerUIStandalonePreset
    ],
    layout: "StandaloneLayout",
    requestInterceptor: function(request) {
      request.credentials = 'include';
      return request;
    }
  });
};
</script>
</body>
</html>`))
