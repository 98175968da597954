// Package docs registers the swagger document of the local API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/sync/reload": {
            "post": {
                "tags": ["sync"],
                "summary": "Reload every kind from the remote",
                "description": "Kinds that fail keep their previous contents. The answer is 207 when at least one kind failed.",
                "responses": {
                    "200": {"description": "every kind reloaded"},
                    "207": {"description": "some kinds failed"}
                }
            }
        },
        "/sync/divergence": {
            "get": {
                "tags": ["sync"],
                "summary": "Failed remote writes and non-synced ids",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/period": {
            "get": {
                "tags": ["sync"],
                "summary": "Resolve a week or month navigator position",
                "parameters": [
                    {"type": "string", "name": "span", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["sync"],
                "summary": "Cross-kind overview for a span",
                "parameters": [{"type": "string", "name": "span", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/habits": {
            "get": {
                "tags": ["habits"],
                "summary": "List habits",
                "parameters": [{"type": "string", "name": "due", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["habits"],
                "summary": "Create a habit",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "validation failed"},
                    "502": {"description": "remote gateway call failed"}
                }
            }
        },
        "/habits/{id}": {
            "patch": {
                "tags": ["habits"],
                "summary": "Update a habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}
            },
            "delete": {
                "tags": ["habits"],
                "summary": "Delete a habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "not found"}}
            }
        },
        "/habits/{id}/toggle": {
            "post": {
                "tags": ["habits"],
                "summary": "Set completion of one day",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "day not due or out of window"}}
            }
        },
        "/habits/log-due": {
            "post": {
                "tags": ["habits"],
                "summary": "Complete every habit due today",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/habits/stats": {
            "get": {
                "tags": ["habits"],
                "summary": "Completion statistics over a week or month",
                "parameters": [
                    {"type": "string", "name": "span", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/habits/window": {
            "put": {
                "tags": ["habits"],
                "summary": "Select the habit window",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/expenses": {
            "get": {
                "tags": ["expenses"],
                "summary": "List expenses of a span",
                "parameters": [
                    {"type": "string", "name": "span", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["expenses"],
                "summary": "Record an expense or income",
                "responses": {"201": {"description": "Created"}, "400": {"description": "validation failed"}}
            }
        },
        "/expenses/summary": {
            "get": {
                "tags": ["expenses"],
                "summary": "Income, spending and per-category budget use",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/quadrants": {
            "get": {
                "tags": ["quadrants"],
                "summary": "Quadrant tasks grouped by bucket",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/quadrant-tasks/{id}/move": {
            "post": {
                "tags": ["quadrants"],
                "summary": "Move a task between buckets",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "not in the source bucket"}}
            }
        },
        "/timer-sessions/stats": {
            "get": {
                "tags": ["timer"],
                "summary": "Focus time totals for a span",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/timer-sessions/goal": {
            "put": {
                "tags": ["timer"],
                "summary": "Set the daily focus goal in minutes",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/thoughts": {
            "get": {
                "tags": ["thoughts"],
                "summary": "List thoughts by category",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "boolean", "name": "active", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["thoughts"],
                "summary": "Add a thought",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/thoughts/next": {
            "get": {
                "tags": ["thoughts"],
                "summary": "Next banner thought after a given id",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "after", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso LifeSync local API",
	Description:      "Local API over the collections mirrored from the remote backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
