package component

// ReloadRequest is a marker component used to ask the game loop to rebuild
// the animations of every animated entity from its prefab. Systems may create
// a short-lived entity with this component to request a reload.
type ReloadRequest struct {
	Path string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
