// Package docs registers the OpenAPI description served by gin-swagger.
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
        "/activejobs": {
            "get": {
                "description": "Jobs that are not deleted and whose end date is in the future",
                "produces": ["application/json"],
                "tags": ["activejobs"],
                "summary": "List active jobs",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Title contains", "name": "title", "in": "query"},
                    {"type": "string", "description": "Company", "name": "company", "in": "query"},
                    {"type": "string", "description": "City", "name": "city", "in": "query"},
                    {"type": "string", "description": "Postal code", "name": "postal_code", "in": "query"},
                    {"type": "string", "description": "Category name", "name": "post_category", "in": "query"},
                    {"type": "string", "description": "Subcategory name", "name": "post_subcategory", "in": "query"},
                    {"type": "integer", "description": "Minimum amount to pay", "name": "min_payment", "in": "query"},
                    {"type": "integer", "description": "Maximum amount to pay", "name": "max_payment", "in": "query"},
                    {"type": "string", "description": "great_payed or no_great_payed", "name": "payment_tier", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/activejobs/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activejobs"],
                "summary": "Get active job details",
                "parameters": [
                    {"type": "string", "description": "Job slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/exports/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Download every job as an Excel workbook or CSV file",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "tags": ["exports"],
                "summary": "Export jobs",
                "parameters": [
                    {"type": "string", "description": "xlsx (default) or csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "description": "Get every non deleted job, newest first",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validate and store a job posting. Slug and commission are derived by the server.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Create a new job",
                "parameters": [
                    {"description": "Job JSON", "name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.CreateJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job details",
                "parameters": [
                    {"type": "string", "description": "Job slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Soft delete a job posting",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Delete a job",
                "parameters": [
                    {"type": "string", "description": "Job slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Partially update a job. The slug follows the title and the commission follows the amount.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Update a job",
                "parameters": [
                    {"type": "string", "description": "Job slug", "name": "slug", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.UpdateJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs/{slug}/avatar": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "JPEG, PNG or GIF up to 5MB. The image is resized and stored as JPEG.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Upload a job avatar",
                "parameters": [
                    {"type": "string", "description": "Job slug", "name": "slug", "in": "path", "required": true},
                    {"type": "file", "description": "Avatar image", "name": "avatar", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/post-areas": {
            "get": {
                "description": "Categories with their subcategories",
                "produces": ["application/json"],
                "tags": ["post-areas"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "v1.CreateJobRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "amount_to_pay": {"type": "integer"},
                "avatar": {"type": "string"},
                "cellphone": {"type": "string"},
                "city": {"type": "string"},
                "company": {"type": "string"},
                "country": {"type": "string"},
                "date_end": {"type": "string"},
                "date_start": {"type": "string"},
                "description": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "post_category": {"type": "string"},
                "post_subcategory": {"type": "string"},
                "postal_code": {"type": "string"},
                "state": {"type": "string"},
                "terms": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "v1.UpdateJobRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "amount_to_pay": {"type": "integer"},
                "cellphone": {"type": "string"},
                "city": {"type": "string"},
                "company": {"type": "string"},
                "country": {"type": "string"},
                "date_end": {"type": "string"},
                "date_start": {"type": "string"},
                "description": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "post_category": {"type": "string"},
                "post_subcategory": {"type": "string"},
                "postal_code": {"type": "string"},
                "state": {"type": "string"},
                "terms": {"type": "string"},
                "title": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Job Posting API",
	Description:      "Job posting backend: validation, categories, slugs and commissions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
