package command

// OpenDirectory opens a directory of images in a new viewer.
type OpenDirectory struct {
	Path string
	// ResumeIndex positions the viewer at a remembered index, -1 to start at the beginning.
	ResumeIndex int
}

func (c *OpenDirectory) CommandName() string {
	return "OpenDirectory"
}

// OpenFile opens a single image file in a new viewer.
type OpenFile struct {
	Path string
}

func (c *OpenFile) CommandName() string {
	return "OpenFile"
}

// CloseViewer closes a running viewer.
type CloseViewer struct {
	baseViewerCommand
}

func NewCloseViewer(viewerID string) *CloseViewer {
	return &CloseViewer{baseViewerCommand{viewerID: viewerID}}
}

func (c *CloseViewer) CommandName() string {
	return "CloseViewer"
}

// CloseAllViewers closes all running viewers.
type CloseAllViewers struct{}

func (c *CloseAllViewers) CommandName() string {
	return "CloseAllViewers"
}
