package host

// NoticeKind identifies the kind of a lifecycle notice.
type NoticeKind string

const (
	// NoticeSceneLoaded is posted after a scene finishes loading.
	// Notice.Scene carries the scene name.
	NoticeSceneLoaded NoticeKind = "scene.loaded"
	// NoticeInspectorReady is posted once the editor inspector exists.
	NoticeInspectorReady NoticeKind = "inspector.ready"
	// NoticeEditorClosed is posted when the editor session is torn down.
	NoticeEditorClosed NoticeKind = "editor.closed"
	// NoticeLevelLoaded is posted after a level is loaded in the editor.
	NoticeLevelLoaded NoticeKind = "level.loaded"
	// NoticeLevelSaved is posted after a level is saved from the editor.
	NoticeLevelSaved NoticeKind = "level.saved"
)

// Notice is one lifecycle message from the game. The game posts notices to
// the session (editor.Session.Announce); the session re-publishes them as
// its own events when pumped.
type Notice struct {
	Kind NoticeKind

	// Scene is the loaded scene name. Set only for NoticeSceneLoaded.
	Scene string
}
