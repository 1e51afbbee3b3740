// Package docs registers the OpenAPI document for the reporting service with swag.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "tags": [
        {"name": "health", "description": "Health check endpoints"},
        {"name": "app", "description": "Application endpoints"}
    ],
    "paths": {
        "/api/v1": {
            "get": {
                "tags": ["app"],
                "summary": "Get API information",
                "responses": {"200": {"description": "API information", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIInfo"}}}}}
            }
        },
        "/api/v1/health": {
            "get": {
                "tags": ["health"],
                "summary": "Get application health status",
                "responses": {"200": {"description": "Health status retrieved successfully", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthReport"}}}}}
            }
        },
        "/api/v1/stats": {
            "get": {
                "tags": ["health"],
                "summary": "Get application statistics",
                "responses": {"200": {"description": "Statistics retrieved successfully", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StatsReport"}}}}}
            }
        },
        "/api/v1/features": {
            "get": {
                "tags": ["health"],
                "summary": "Get application features",
                "responses": {"200": {"description": "Features retrieved successfully", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Feature"}}}}}}
            }
        },
        "/health": {
            "get": {
                "summary": "Simple health check for load balancer",
                "responses": {"200": {"description": "OK", "content": {"text/plain": {"schema": {"type": "string"}}}}}
            }
        }
    },
    "components": {
        "schemas": {
            "APIInfo": {
                "type": "object",
                "properties": {
                    "message": {"type": "string"},
                    "version": {"type": "string"},
                    "framework": {"type": "string"},
                    "endpoints": {"type": "array", "items": {"type": "string"}},
                    "documentation": {"type": "string"}
                }
            },
            "HealthReport": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "enum": ["healthy", "warning", "error"]},
                    "timestamp": {"type": "string", "format": "date-time"},
                    "version": {"type": "string"},
                    "environment": {"type": "string"},
                    "uptime": {"type": "integer", "minimum": 0},
                    "memory": {
                        "type": "object",
                        "properties": {"used": {"type": "number"}, "total": {"type": "number"}}
                    },
                    "cpu": {
                        "type": "object",
                        "properties": {"user": {"type": "integer"}, "system": {"type": "integer"}}
                    }
                }
            },
            "StatsReport": {
                "type": "object",
                "properties": {
                    "totalRequests": {"type": "integer", "minimum": 0},
                    "uptime": {"type": "string", "example": "1h 2m 3s"},
                    "memoryUsage": {"type": "string", "example": "12.5 MB"},
                    "environment": {"type": "string"},
                    "runtimeVersion": {"type": "string"},
                    "platform": {"type": "string"},
                    "pid": {"type": "integer"}
                }
            },
            "Feature": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "description": {"type": "string"},
                    "status": {"type": "string", "enum": ["active", "inactive"]},
                    "lastUpdated": {"type": "string", "format": "date-time"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AWS CI/CD Pipeline API",
	Description:      "Full-Stack Application with Enterprise DevOps Practices",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
