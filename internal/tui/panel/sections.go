package panel

import (
	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/cristianoliveira/roomprefs/internal/tui/controls"
)

type section struct {
	title     string
	controls  []controls.Control
	collapsed bool
}

var (
	fontSizePresets    = []float64{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 18, 20, 22, 24, 28, 32, 36, 40}
	scaleFactorPresets = []float64{1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3}
)

func themeOptions() []controls.Option {
	return []controls.Option{
		{Value: settings.ThemeLight, Label: "Light"},
		{Value: settings.ThemeDark, Label: "Dark"},
		{Value: settings.ThemeSystem, Label: "System"},
	}
}

func presenceOptions() []controls.Option {
	return []controls.Option{
		{Value: settings.PresenceAutomatic, Label: "Automatic"},
		{Value: settings.PresenceOnline, Label: "Online"},
		{Value: settings.PresenceUnavailable, Label: "Unavailable"},
		{Value: settings.PresenceOffline, Label: "Offline"},
	}
}

// deviceOptions prepends an empty choice meaning "no device".
func deviceOptions(names []string) []controls.Option {
	return append([]controls.Option{{Value: "", Label: ""}}, controls.StringOptions(names...)...)
}

// fontOptions offers the empty family as the system font.
func (m *Model) fontOptions() []controls.Option {
	opts := []controls.Option{{Value: "", Label: "System default"}}
	return append(opts, controls.StringOptions(m.devices.Fonts()...)...)
}

func (m *Model) emojiFontOptions() []controls.Option {
	opts := []controls.Option{{Value: settings.EmojiFontDefault, Label: settings.EmojiFontDefault}}
	return append(opts, controls.StringOptions(m.devices.Fonts()...)...)
}

func (m *Model) buildSections() []*section {
	return []*section{
		{title: "General", controls: []controls.Control{
			controls.NewToggle(settings.KeyTray, "Minimize to tray"),
			controls.NewToggle(settings.KeyStartInTray, "Start in tray"),
			controls.NewToggle(settings.KeyPrivacyScreen, "Privacy screen"),
			controls.NewSpin(settings.KeyPrivacyScreenTimeout, "Privacy screen timeout", 0, 3600, 10).WithSuffix(" s"),
			controls.NewToggle(settings.KeyMobileMode, "Touchscreen mode"),
			controls.NewCombo(settings.KeyPresence, "Presence", presenceOptions()),
		}},
		{title: "Appearance", controls: []controls.Control{
			controls.NewCombo(settings.KeyTheme, "Theme", themeOptions()),
			controls.NewFloatCombo(settings.KeyScaleFactor, "Scale factor", scaleFactorPresets),
			controls.NewFloatCombo(settings.KeyFontSize, "Font size", fontSizePresets),
			controls.NewCombo(settings.KeyFont, "Font family", m.fontOptions()),
			controls.NewCombo(settings.KeyEmojiFont, "Emoji font family", m.emojiFontOptions()),
			controls.NewToggle(settings.KeyAvatarCircles, "Circular avatars"),
			controls.NewToggle(settings.KeyUseIdenticon, "Use identicons"),
			controls.NewSpin(settings.KeyTimelineMaxWidth, "Timeline max width", 0, 65535, 20).WithSpecial("unlimited"),
		}},
		{title: "Timeline", controls: []controls.Control{
			controls.NewToggle(settings.KeyMessageHoverHighlight, "Highlight message on hover"),
			controls.NewToggle(settings.KeyEnlargeEmojiOnlyMessages, "Large emoji in timeline"),
			controls.NewToggle(settings.KeyMarkdown, "Send messages as Markdown"),
			controls.NewToggle(settings.KeyAnimateImagesOnHover, "Play animated images only on hover"),
			controls.NewToggle(settings.KeyTypingNotifications, "Typing notifications"),
			controls.NewToggle(settings.KeyButtonsInTimeline, "Show buttons in timeline"),
			controls.NewToggle(settings.KeyReadReceipts, "Read receipts"),
		}},
		{title: "Sidebar", controls: []controls.Control{
			controls.NewToggle(settings.KeyGroupView, "Communities sidebar"),
			controls.NewToggle(settings.KeySortByImportance, "Sort rooms by unreads"),
			controls.NewToggle(settings.KeyDecryptSidebar, "Decrypt messages in sidebar"),
			controls.NewSpin(settings.KeyRoomListWidth, "Room list width", -1, 65535, 10).WithSpecial("auto"),
			controls.NewSpin(settings.KeyCommunityListWidth, "Community list width", -1, 65535, 10).WithSpecial("auto"),
			controls.NewText(settings.KeyHiddenTags, "Hidden tags", "tag, tag"),
			controls.NewText(settings.KeyHiddenPins, "Hidden pins", "room, room"),
		}},
		{title: "Notifications", controls: []controls.Control{
			controls.NewToggle(settings.KeyDesktopNotifications, "Desktop notifications"),
			controls.NewToggle(settings.KeyAlertOnNotification, "Alert on notification"),
		}},
		{title: "Calls", controls: []controls.Control{
			controls.NewCombo(settings.KeyRingtone, "Ringtone", controls.StringOptions(m.devices.Ringtones()...)),
			controls.NewCombo(settings.KeyMicrophone, "Microphone", deviceOptions(m.devices.Microphones())),
			controls.NewCombo(settings.KeyCamera, "Camera", deviceOptions(m.devices.Cameras())),
			controls.NewCombo(settings.KeyCameraResolution, "Camera resolution", nil),
			controls.NewCombo(settings.KeyCameraFrameRate, "Camera frame rate", nil),
			controls.NewSpin(settings.KeyScreenShareFrameRate, "Screen share frame rate", 1, 30, 1),
			controls.NewToggle(settings.KeyScreenSharePiP, "Screen share picture-in-picture"),
			controls.NewToggle(settings.KeyScreenShareRemoteVideo, "Screen share remote video"),
			controls.NewToggle(settings.KeyScreenShareHideCursor, "Hide cursor when sharing"),
			controls.NewToggle(settings.KeyUseStunServer, "Allow fallback call assist server"),
		}},
		{title: "Encryption", controls: []controls.Control{
			controls.NewToggle(settings.KeyOnlyShareKeysWithVerifiedUsers, "Send keys only to verified users"),
			controls.NewToggle(settings.KeyShareKeysWithTrustedUsers, "Share keys with trusted users"),
			controls.NewToggle(settings.KeyUseOnlineKeyBackup, "Online key backup"),
		}},
		{title: "Account", controls: []controls.Control{
			controls.NewLabel(settings.KeyProfile, "Profile"),
			controls.NewLabel(settings.KeyUserID, "User ID"),
			controls.NewLabel(settings.KeyDeviceID, "Device ID"),
			controls.NewLabel(settings.KeyHomeserver, "Homeserver"),
			controls.NewText(settings.KeyAccessToken, "Access token", "").Masked(),
			controls.NewToggle(settings.KeyDisableCertificateValidation, "Disable certificate validation"),
		}},
	}
}
