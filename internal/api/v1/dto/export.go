package dto

// ExportQuery represents query parameters for the export endpoint
type ExportQuery struct {
	Project string `form:"project"`
	Format  string `form:"format,default=csv" binding:"omitempty,oneof=csv json"`
	Limit   int    `form:"limit,default=1000" binding:"min=1,max=10000"`
}
