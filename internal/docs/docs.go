// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Se regenera con `swag init -g cmd/api/main.go -o internal/docs`.
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
        "/animals/{tagID}": {
            "get": {
                "description": "Devuelve el formulario precargado con la ficha guardada. Si el tag no existe responde 200 con found=false y valores por defecto.",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Cargar formulario de un animal",
                "parameters": [
                    {"type": "string", "description": "Tag del animal", "name": "tagID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.loadFormResponse"}},
                    "400": {"description": "tag_id is required", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "put": {
                "description": "Crea o reemplaza la ficha del animal. El tag de la URL manda sobre el del body.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Guardar ficha de animal",
                "parameters": [
                    {"type": "string", "description": "Tag del animal", "name": "tagID", "in": "path", "required": true},
                    {"description": "Ficha", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.upsertAnimalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.AnimalResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{tagID}/activities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Listar actividades de un animal",
                "parameters": [
                    {"type": "string", "description": "Tag del animal", "name": "tagID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/activities.ActivityResponse"}}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Agrega una actividad a un animal ya guardado. Reenviar el mismo ref no duplica.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Registrar actividad",
                "parameters": [
                    {"type": "string", "description": "Tag del animal", "name": "tagID", "in": "path", "required": true},
                    {"description": "Actividad", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/activities.createActivityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/activities.ActivityResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "409": {"description": "ref already used by another activity", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Liveness",
                "responses": {"200": {"description": "ok", "schema": {"type": "string"}}}
            }
        },
        "/records": {
            "get": {
                "description": "Left join de animales con sus actividades. El orden no está garantizado.",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Ver todos los registros",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.recordResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Valida el formulario y guarda la ficha del animal junto con la actividad seleccionada.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Guardar registro",
                "parameters": [
                    {"description": "Formulario completo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.Form"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/records.saveRecordResponse"}},
                    "400": {"description": "Tag ID is required / reglas de validación", "schema": {"type": "string"}},
                    "409": {"description": "ref already used by another activity", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/records.partialSaveResponse"}}
                }
            }
        },
        "/records/export.csv": {
            "get": {
                "description": "Descarga sheep_data.csv. Responde 204 si no hay datos para exportar.",
                "produces": ["text/csv"],
                "tags": ["records"],
                "summary": "Exportar registros a CSV",
                "responses": {
                    "200": {"description": "CSV", "schema": {"type": "string"}},
                    "204": {"description": "no data to export", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/records/export.xlsx": {
            "get": {
                "description": "Descarga sheep_data.xlsx. Responde 204 si no hay datos para exportar.",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["records"],
                "summary": "Exportar registros a Excel",
                "responses": {
                    "200": {"description": "XLSX", "schema": {"type": "file"}},
                    "204": {"description": "no data to export", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "activities.ActivityResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "tag_id": {"type": "string"},
                "activity": {"type": "string", "enum": ["Vaccination", "Lambing", "Culling", "Sale"]},
                "details": {"type": "object"},
                "ref": {"type": "string"},
                "recorded_at": {"type": "string"}
            }
        },
        "activities.createActivityRequest": {
            "type": "object",
            "properties": {
                "activity": {"type": "string", "enum": ["Vaccination", "Lambing", "Culling", "Sale"]},
                "details": {"type": "object"},
                "ref": {"type": "string"}
            }
        },
        "animals.AnimalResponse": {
            "type": "object",
            "properties": {
                "tag_id": {"type": "string"},
                "dob_purchase": {"type": "string"},
                "sex": {"type": "string", "enum": ["Male", "Female"]},
                "approx_age": {"type": "integer"},
                "weight": {"type": "number"},
                "body_score": {"type": "integer"},
                "feed_type": {"type": "string", "enum": ["Pasture", "Grain", "Both"]},
                "notes": {"type": "string"},
                "pregnant": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "animals.upsertAnimalRequest": {
            "type": "object",
            "properties": {
                "dob_purchase": {"type": "string"},
                "sex": {"type": "string", "enum": ["Male", "Female"]},
                "approx_age": {"type": "integer"},
                "weight": {"type": "number"},
                "body_score": {"type": "integer"},
                "feed_type": {"type": "string", "enum": ["Pasture", "Grain", "Both"]},
                "notes": {"type": "string"},
                "pregnant": {"type": "boolean"}
            }
        },
        "records.Form": {
            "type": "object",
            "properties": {
                "tag_id": {"type": "string"},
                "dob_purchase": {"type": "string"},
                "sex": {"type": "string", "enum": ["Male", "Female"]},
                "approx_age": {"type": "integer"},
                "weight": {"type": "number"},
                "body_score": {"type": "integer"},
                "feed_type": {"type": "string", "enum": ["Pasture", "Grain", "Both"]},
                "notes": {"type": "string"},
                "pregnant": {"type": "boolean"},
                "activity": {"type": "string", "enum": ["Vaccination", "Lambing", "Culling", "Sale"]},
                "details": {"type": "object"},
                "ref": {"type": "string"}
            }
        },
        "records.loadFormResponse": {
            "type": "object",
            "properties": {
                "found": {"type": "boolean"},
                "form": {"$ref": "#/definitions/records.Form"}
            }
        },
        "records.partialSaveResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "tag_id": {"type": "string"},
                "ref": {"type": "string"}
            }
        },
        "records.recordResponse": {
            "type": "object",
            "properties": {
                "animal": {"$ref": "#/definitions/animals.AnimalResponse"},
                "activity": {"$ref": "#/definitions/activities.ActivityResponse"}
            }
        },
        "records.saveRecordResponse": {
            "type": "object",
            "properties": {
                "animal": {"$ref": "#/definitions/animals.AnimalResponse"},
                "activity": {"$ref": "#/definitions/activities.ActivityResponse"}
            }
        }
    }
}`

// SwaggerInfo contiene la info exportada del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Sheep Management API",
	Description:      "Fichas de animales y registro de actividades (vacunación, parto, descarte, venta).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
