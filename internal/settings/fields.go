package settings

import (
	"fmt"
	"sort"
)

// Kind is the value type of a field.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindPresence
	KindStringList
	KindStringLists
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindPresence:
		return "presence"
	case KindStringList:
		return "string list"
	case KindStringLists:
		return "list of string lists"
	default:
		return "unknown"
	}
}

// Persistence keys.
const (
	KeyTheme                          = "user/theme"
	KeyMessageHoverHighlight          = "user/timeline/message_hover_highlight"
	KeyEnlargeEmojiOnlyMessages       = "user/timeline/enlarge_emoji_only_msg"
	KeyTray                           = "user/window/tray"
	KeyStartInTray                    = "user/window/start_in_tray"
	KeyGroupView                      = "user/group_view"
	KeyMarkdown                       = "user/markdown_enabled"
	KeyAnimateImagesOnHover           = "user/animate_images_on_hover"
	KeyTypingNotifications            = "user/typing_notifications"
	KeySortByImportance               = "user/sort_by_unread"
	KeyButtonsInTimeline              = "user/timeline/buttons"
	KeyReadReceipts                   = "user/read_receipts"
	KeyDesktopNotifications           = "user/desktop_notifications"
	KeyAlertOnNotification            = "user/alert_on_notification"
	KeyAvatarCircles                  = "user/avatar_circles"
	KeyDecryptSidebar                 = "user/decrypt_sidebar"
	KeyPrivacyScreen                  = "user/privacy_screen"
	KeyPrivacyScreenTimeout           = "user/privacy_screen_timeout"
	KeyTimelineMaxWidth               = "user/timeline/max_width"
	KeyRoomListWidth                  = "user/sidebar/room_list_width"
	KeyCommunityListWidth             = "user/sidebar/community_list_width"
	KeyMobileMode                     = "user/mobile_mode"
	KeyFontSize                       = "user/font_size"
	KeyFont                           = "user/font_family"
	KeyEmojiFont                      = "user/emoji_font_family"
	KeyPresence                       = "user/presence"
	KeyRingtone                       = "user/ringtone"
	KeyMicrophone                     = "user/microphone"
	KeyCamera                         = "user/camera"
	KeyCameraResolution               = "user/camera_resolution"
	KeyCameraFrameRate                = "user/camera_frame_rate"
	KeyScreenShareFrameRate           = "user/screen_share_frame_rate"
	KeyScreenSharePiP                 = "user/screen_share_pip"
	KeyScreenShareRemoteVideo         = "user/screen_share_remote_video"
	KeyScreenShareHideCursor          = "user/screen_share_hide_cursor"
	KeyUseStunServer                  = "user/use_stun_server"
	KeyOnlyShareKeysWithVerifiedUsers = "user/only_share_keys_with_verified_users"
	KeyShareKeysWithTrustedUsers      = "user/share_keys_with_trusted_users"
	KeyUseOnlineKeyBackup             = "user/online_key_backup"
	KeyProfile                        = "user/current_profile"
	KeyUserID                         = "auth/user_id"
	KeyAccessToken                    = "auth/access_token"
	KeyDeviceID                       = "auth/device_id"
	KeyHomeserver                     = "auth/home_server"
	KeyDisableCertificateValidation   = "auth/disable_certificate_validation"
	KeyUseIdenticon                   = "user/use_identicon"
	KeyHiddenTags                     = "user/hidden_tags"
	KeyHiddenPins                     = "user/hidden_pins"
	KeyCollapsedSpaces                = "user/collapsed_spaces"
	KeyScaleFactor                    = "settings/scale_factor"

	// KeyHasNotifications names the derived field. It is never persisted.
	KeyHasNotifications = "has_notifications"
)

// Theme names.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// EmojiFontDefault is the stored emoji font value meaning "use the bundled font".
const EmojiFontDefault = "Default"

// Field describes one stored preference.
type Field struct {
	Key     string
	Kind    Kind
	Default any
	// Min and Max bound numeric fields when Ranged is set.
	Min, Max float64
	Ranged   bool
	// Options restricts string fields to a fixed set.
	Options   []string
	Sensitive bool
	Label     string
}

// InRange reports whether n satisfies the field's numeric bounds.
func (f Field) InRange(n float64) bool {
	if !f.Ranged {
		return true
	}
	return n >= f.Min && n <= f.Max
}

func boolField(key, label string, def bool) Field {
	return Field{Key: key, Kind: KindBool, Default: def, Label: label}
}

func intField(key, label string, def, min, max int) Field {
	return Field{Key: key, Kind: KindInt, Default: def, Min: float64(min), Max: float64(max), Ranged: true, Label: label}
}

func stringField(key, label, def string) Field {
	return Field{Key: key, Kind: KindString, Default: def, Label: label}
}

var fieldList = []Field{
	{Key: KeyTheme, Kind: KindString, Default: "", Options: []string{"", ThemeLight, ThemeDark, ThemeSystem}, Label: "Theme"},
	boolField(KeyMessageHoverHighlight, "Highlight message on hover", false),
	boolField(KeyEnlargeEmojiOnlyMessages, "Large emoji in timeline", false),
	boolField(KeyTray, "Minimize to tray", true),
	boolField(KeyStartInTray, "Start in tray", false),
	boolField(KeyGroupView, "Group's sidebar", true),
	boolField(KeyMarkdown, "Send messages as Markdown", true),
	boolField(KeyAnimateImagesOnHover, "Play animated images only on hover", false),
	boolField(KeyTypingNotifications, "Typing notifications", true),
	boolField(KeySortByImportance, "Sort rooms by unreads", true),
	boolField(KeyButtonsInTimeline, "Show buttons in timeline", true),
	boolField(KeyReadReceipts, "Read receipts", true),
	boolField(KeyDesktopNotifications, "Desktop notifications", true),
	boolField(KeyAlertOnNotification, "Alert on notification", false),
	boolField(KeyAvatarCircles, "Circular avatars", true),
	boolField(KeyDecryptSidebar, "Decrypt messages in sidebar", true),
	boolField(KeyPrivacyScreen, "Privacy screen", false),
	intField(KeyPrivacyScreenTimeout, "Privacy screen timeout (seconds)", 0, 0, 3600),
	intField(KeyTimelineMaxWidth, "Timeline max width", 0, 0, 65535),
	intField(KeyRoomListWidth, "Room list width", -1, -1, 65535),
	intField(KeyCommunityListWidth, "Community list width", -1, -1, 65535),
	boolField(KeyMobileMode, "Touchscreen mode", false),
	{Key: KeyFontSize, Kind: KindFloat, Default: 10.0, Min: 6, Max: 40, Ranged: true, Label: "Font size"},
	stringField(KeyFont, "Font family", ""),
	stringField(KeyEmojiFont, "Emoji font family", EmojiFontDefault),
	{Key: KeyPresence, Kind: KindPresence, Default: PresenceAutomatic, Label: "Presence"},
	stringField(KeyRingtone, "Ringtone", "Mute"),
	stringField(KeyMicrophone, "Microphone", ""),
	stringField(KeyCamera, "Camera", ""),
	stringField(KeyCameraResolution, "Camera resolution", ""),
	stringField(KeyCameraFrameRate, "Camera frame rate", ""),
	intField(KeyScreenShareFrameRate, "Screen share frame rate", 5, 1, 30),
	boolField(KeyScreenSharePiP, "Screen share picture-in-picture", true),
	boolField(KeyScreenShareRemoteVideo, "Screen share request remote camera", false),
	boolField(KeyScreenShareHideCursor, "Screen share hide cursor", false),
	boolField(KeyUseStunServer, "Allow fallback call assist server", false),
	boolField(KeyOnlyShareKeysWithVerifiedUsers, "Send encrypted messages to verified users only", false),
	boolField(KeyShareKeysWithTrustedUsers, "Share keys with verified users and devices", true),
	boolField(KeyUseOnlineKeyBackup, "Online key backup", false),
	stringField(KeyProfile, "Profile", ""),
	stringField(KeyUserID, "User ID", ""),
	{Key: KeyAccessToken, Kind: KindString, Default: "", Sensitive: true, Label: "Access token"},
	stringField(KeyDeviceID, "Device ID", ""),
	stringField(KeyHomeserver, "Homeserver", ""),
	boolField(KeyDisableCertificateValidation, "Disable certificate validation", false),
	boolField(KeyUseIdenticon, "Use identicons", true),
	{Key: KeyHiddenTags, Kind: KindStringList, Default: []string{}, Label: "Hidden tags"},
	{Key: KeyHiddenPins, Kind: KindStringList, Default: []string{}, Label: "Hidden pins"},
	{Key: KeyCollapsedSpaces, Kind: KindStringLists, Default: [][]string{}, Label: "Collapsed spaces"},
	{Key: KeyScaleFactor, Kind: KindFloat, Default: 1.0, Min: 1, Max: 3, Ranged: true, Label: "Scale factor"},
}

var registry = newRegistry(fieldList)

func newRegistry(fields []Field) map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, dup := m[f.Key]; dup {
			panic(fmt.Sprintf("settings: duplicate key %q", f.Key))
		}
		if f.Key == KeyHasNotifications {
			panic(fmt.Sprintf("settings: key %q is reserved", f.Key))
		}
		m[f.Key] = f
	}
	return m
}

// Fields returns every stored field in registry order.
func Fields() []Field {
	out := make([]Field, len(fieldList))
	copy(out, fieldList)
	return out
}

// Keys returns the stored keys sorted alphabetically.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the field registered under key.
func Lookup(key string) (Field, bool) {
	f, ok := registry[key]
	return f, ok
}

// IsSensitive reports whether values of key must be hidden from logs and
// hook environments.
func IsSensitive(key string) bool {
	return registry[key].Sensitive
}
