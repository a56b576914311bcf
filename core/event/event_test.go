package event

import (
	"errors"
	"image"
	"testing"

	"axiv-go/core/state"
)

func TestEvent_Names(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{NewDirectoryOpened("v1", "/photos", 10), "DirectoryOpened"},
		{NewViewerClosed("v1", nil), "ViewerClosed"},
		{NewViewerStateChanged("v1", state.StateIdle, state.StateScanning), "ViewerStateChanged"},
		{NewOperationFailed("v1", "delete", errors.New("test")), "OperationFailed"},
		{NewPictureChanged("v1", 0, 10, "/photos/a.png"), "PictureChanged"},
		{NewPictureRendered("v1", "/photos/a.png", nil), "PictureRendered"},
		{NewPictureLoadFailed("v1", "/photos/a.png", errors.New("test")), "PictureLoadFailed"},
		{NewPictureDeleted("v1", "/photos/a.png", 9), "PictureDeleted"},
		{NewMetadataLoaded("v1", "/photos/a.png", nil), "MetadataLoaded"},
		{NewSlideshowStarted("v1", 3000), "SlideshowStarted"},
		{NewSlideshowStopped("v1"), "SlideshowStopped"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.EventName(); got != tt.expected {
				t.Errorf("EventName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewerEvent_ViewerID(t *testing.T) {
	tests := []struct {
		name     string
		event    ViewerEvent
		expected string
	}{
		{"DirectoryOpened", NewDirectoryOpened("viewer-123", "/p", 1), "viewer-123"},
		{"ViewerClosed", NewViewerClosed("viewer-456", nil), "viewer-456"},
		{"ViewerStateChanged", NewViewerStateChanged("viewer-789", state.StateIdle, state.StateScanning), "viewer-789"},
		{"OperationFailed", NewOperationFailed("viewer-abc", "open", nil), "viewer-abc"},
		{"PictureChanged", NewPictureChanged("viewer-def", 0, 1, "/a"), "viewer-def"},
		{"PictureRendered", NewPictureRendered("viewer-ghi", "/a", nil), "viewer-ghi"},
		{"PictureLoadFailed", NewPictureLoadFailed("viewer-jkl", "/a", nil), "viewer-jkl"},
		{"PictureDeleted", NewPictureDeleted("viewer-mno", "/a", 0), "viewer-mno"},
		{"MetadataLoaded", NewMetadataLoaded("viewer-pqr", "/a", nil), "viewer-pqr"},
		{"SlideshowStarted", NewSlideshowStarted("viewer-stu", 0), "viewer-stu"},
		{"SlideshowStopped", NewSlideshowStopped("viewer-vwx"), "viewer-vwx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.ViewerID(); got != tt.expected {
				t.Errorf("ViewerID() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDirectoryOpened_Fields(t *testing.T) {
	e := NewDirectoryOpened("v1", "/photos/trip", 42)

	if e.Path != "/photos/trip" {
		t.Errorf("Path = %v, want /photos/trip", e.Path)
	}
	if e.Count != 42 {
		t.Errorf("Count = %v, want 42", e.Count)
	}
}

func TestViewerClosed_Error(t *testing.T) {
	testErr := errors.New("test error")
	e := NewViewerClosed("v1", testErr)

	if e.Error != testErr {
		t.Errorf("Error = %v, want %v", e.Error, testErr)
	}
}

func TestViewerStateChanged_States(t *testing.T) {
	e := NewViewerStateChanged("v1", state.StateBrowsing, state.StateSlideshow)

	if e.OldState != state.StateBrowsing {
		t.Errorf("OldState = %v, want Browsing", e.OldState)
	}
	if e.NewState != state.StateSlideshow {
		t.Errorf("NewState = %v, want Slideshow", e.NewState)
	}
}

func TestPictureRendered_Image(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	e := NewPictureRendered("v1", "/photos/a.png", img)

	if e.Image != img {
		t.Error("Image not set correctly")
	}
}

func TestPictureChanged_Fields(t *testing.T) {
	e := NewPictureChanged("v1", 3, 10, "/photos/d.png")

	if e.Index != 3 || e.Total != 10 {
		t.Errorf("Position = %d/%d, want 3/10", e.Index, e.Total)
	}
	if e.Path != "/photos/d.png" {
		t.Errorf("Path = %v, want /photos/d.png", e.Path)
	}
}
