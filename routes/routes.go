package routes

// Routes package cung cấp tất cả routing functions cho Location Cleaner Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*), middleware
// - web.go: Web routes (/, /docs)
// - routes.go: Export functions
//
// Sử dụng:
// routes.SetupAllRoutes(router, locationController, adminController)
