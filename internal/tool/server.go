package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ukaji3/sheetgroup-go/internal/config"
)

// NewServer creates an MCP server with every workbook tool registered.
func NewServer(cfg *config.Config, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "sheetgroup", Version: version}, nil)

	tools := NewTools(cfg)
	mcp.AddTool(server, MetadataListSheets, tools.ListSheets)
	mcp.AddTool(server, MetadataClassifyWorkbook, tools.ClassifyWorkbook)
	mcp.AddTool(server, MetadataExportWorkbook, tools.ExportWorkbook)
	return server
}
