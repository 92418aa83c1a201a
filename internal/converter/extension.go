package converter

import (
	extensionDTO "gradescope_proxy/internal/api/dto/extension"
	"gradescope_proxy/internal/model"
)

func ToExtensionsResponse(extensions map[string]model.Extension) map[string]extensionDTO.ExtensionResponse {
	result := make(map[string]extensionDTO.ExtensionResponse, len(extensions))
	for userID, e := range extensions {
		result[userID] = extensionDTO.ExtensionResponse{
			Name:        e.Name,
			ReleaseDate: e.ReleaseDate,
			DueDate:     e.DueDate,
			LateDueDate: e.LateDueDate,
			DeletePath:  e.DeletePath,
		}
	}
	return result
}
