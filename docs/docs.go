// Package docs holds the OpenAPI description served under /swagger.
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
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check (pings the database)",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/person": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Add a person, child or employee",
                "parameters": [
                    {"description": "Person body; \"type\" selects the variant", "name": "person", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.EmployeeDto"}}
                ],
                "responses": {
                    "200": {"description": "true when stored, false when the id is taken", "schema": {"type": "boolean"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Find a person by id",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PersonDto"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Remove a person and return the removed record",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PersonDto"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/{id}/name/{name}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Rename a person",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PersonDto"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/{id}/address": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Replace a person's address",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "address", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddressDto"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PersonDto"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/city/{city}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Persons living in a city",
                "parameters": [{"type": "string", "name": "city", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PersonDto"}}}}
            }
        },
        "/person/name/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Persons with a given name",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PersonDto"}}}}
            }
        },
        "/person/ages/{from}/{to}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Persons whose age in whole years is within [from, to]",
                "parameters": [
                    {"type": "integer", "name": "from", "in": "path", "required": true},
                    {"type": "integer", "name": "to", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PersonDto"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/population/city": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Residents per city, most populous first",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CityPopulationDto"}}}}
            }
        },
        "/person/children": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "All children",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ChildDto"}}}}
            }
        },
        "/person/salary/{min}/{max}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["person"],
                "summary": "Employees with salary within [min, max]",
                "parameters": [
                    {"type": "integer", "name": "min", "in": "path", "required": true},
                    {"type": "integer", "name": "max", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.EmployeeDto"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/exports": {
            "post": {
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Snapshot all persons to object storage",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.ExportResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/person/exports/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Download a snapshot",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AddressDto": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "street": {"type": "string"},
                "building": {"type": "integer"}
            }
        },
        "dto.PersonDto": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["person", "child", "employee"]},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "birthDate": {"type": "string", "example": "1985-04-11"},
                "address": {"$ref": "#/definitions/dto.AddressDto"}
            }
        },
        "dto.ChildDto": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "child"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "birthDate": {"type": "string"},
                "address": {"$ref": "#/definitions/dto.AddressDto"},
                "kindergarten": {"type": "string"}
            }
        },
        "dto.EmployeeDto": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "employee"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "birthDate": {"type": "string"},
                "address": {"$ref": "#/definitions/dto.AddressDto"},
                "employer": {"type": "string"},
                "salary": {"type": "integer"}
            }
        },
        "dto.CityPopulationDto": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "population": {"type": "integer"}
            }
        },
        "service.ExportResult": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "key": {"type": "string"},
                "count": {"type": "integer"},
                "url": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Person API",
	Description:      "CRUD and queries over persons, children and employees.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
