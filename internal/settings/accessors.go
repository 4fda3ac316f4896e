package settings

// Typed accessors. Getters read the cache; setters behave like Set.

// Theme returns the stored theme, or the platform default when unset.
func (s *Store) Theme() string {
	if t, _ := s.value(KeyTheme).(string); t != "" {
		return t
	}
	return s.defaultTheme
}

// SetTheme sets the theme. The empty string restores the platform default.
func (s *Store) SetTheme(theme string) error { return s.Set(KeyTheme, theme) }

// EmojiFont returns the emoji font family. The bundled font is reported
// with the configured display label.
func (s *Store) EmojiFont() string {
	f, _ := s.value(KeyEmojiFont).(string)
	if f == EmojiFontDefault {
		return s.emojiDefault
	}
	return f
}

// SetEmojiFontFamily sets the emoji font family.
func (s *Store) SetEmojiFontFamily(family string) error { return s.Set(KeyEmojiFont, family) }

// UseIdenticon reports whether identicons are enabled and available.
func (s *Store) UseIdenticon() bool {
	on, _ := s.value(KeyUseIdenticon).(bool)
	return on && s.identicon()
}

// SetUseIdenticon enables or disables identicons.
func (s *Store) SetUseIdenticon(on bool) error { return s.Set(KeyUseIdenticon, on) }

// HasNotifications is true when desktop notifications or alerts are on.
func (s *Store) HasNotifications() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	desktop, _ := s.values[KeyDesktopNotifications].(bool)
	alert, _ := s.values[KeyAlertOnNotification].(bool)
	return desktop || alert
}

// SetProfile accepts only the active profile; see ErrProfileImmutable.
func (s *Store) SetProfile(profile string) error { return s.Set(KeyProfile, profile) }

func (s *Store) MessageHoverHighlight() bool {
	v, _ := s.value(KeyMessageHoverHighlight).(bool)
	return v
}

func (s *Store) SetMessageHoverHighlight(v bool) error { return s.Set(KeyMessageHoverHighlight, v) }

func (s *Store) EnlargeEmojiOnlyMessages() bool {
	v, _ := s.value(KeyEnlargeEmojiOnlyMessages).(bool)
	return v
}

func (s *Store) SetEnlargeEmojiOnlyMessages(v bool) error {
	return s.Set(KeyEnlargeEmojiOnlyMessages, v)
}

func (s *Store) Tray() bool {
	v, _ := s.value(KeyTray).(bool)
	return v
}

func (s *Store) SetTray(v bool) error { return s.Set(KeyTray, v) }

func (s *Store) StartInTray() bool {
	v, _ := s.value(KeyStartInTray).(bool)
	return v
}

func (s *Store) SetStartInTray(v bool) error { return s.Set(KeyStartInTray, v) }

func (s *Store) GroupView() bool {
	v, _ := s.value(KeyGroupView).(bool)
	return v
}

func (s *Store) SetGroupView(v bool) error { return s.Set(KeyGroupView, v) }

func (s *Store) Markdown() bool {
	v, _ := s.value(KeyMarkdown).(bool)
	return v
}

func (s *Store) SetMarkdown(v bool) error { return s.Set(KeyMarkdown, v) }

func (s *Store) AnimateImagesOnHover() bool {
	v, _ := s.value(KeyAnimateImagesOnHover).(bool)
	return v
}

func (s *Store) SetAnimateImagesOnHover(v bool) error { return s.Set(KeyAnimateImagesOnHover, v) }

func (s *Store) TypingNotifications() bool {
	v, _ := s.value(KeyTypingNotifications).(bool)
	return v
}

func (s *Store) SetTypingNotifications(v bool) error { return s.Set(KeyTypingNotifications, v) }

func (s *Store) SortByImportance() bool {
	v, _ := s.value(KeySortByImportance).(bool)
	return v
}

func (s *Store) SetSortByImportance(v bool) error { return s.Set(KeySortByImportance, v) }

func (s *Store) ButtonsInTimeline() bool {
	v, _ := s.value(KeyButtonsInTimeline).(bool)
	return v
}

func (s *Store) SetButtonsInTimeline(v bool) error { return s.Set(KeyButtonsInTimeline, v) }

func (s *Store) ReadReceipts() bool {
	v, _ := s.value(KeyReadReceipts).(bool)
	return v
}

func (s *Store) SetReadReceipts(v bool) error { return s.Set(KeyReadReceipts, v) }

func (s *Store) DesktopNotifications() bool {
	v, _ := s.value(KeyDesktopNotifications).(bool)
	return v
}

func (s *Store) SetDesktopNotifications(v bool) error { return s.Set(KeyDesktopNotifications, v) }

func (s *Store) AlertOnNotification() bool {
	v, _ := s.value(KeyAlertOnNotification).(bool)
	return v
}

func (s *Store) SetAlertOnNotification(v bool) error { return s.Set(KeyAlertOnNotification, v) }

func (s *Store) AvatarCircles() bool {
	v, _ := s.value(KeyAvatarCircles).(bool)
	return v
}

func (s *Store) SetAvatarCircles(v bool) error { return s.Set(KeyAvatarCircles, v) }

func (s *Store) DecryptSidebar() bool {
	v, _ := s.value(KeyDecryptSidebar).(bool)
	return v
}

func (s *Store) SetDecryptSidebar(v bool) error { return s.Set(KeyDecryptSidebar, v) }

func (s *Store) PrivacyScreen() bool {
	v, _ := s.value(KeyPrivacyScreen).(bool)
	return v
}

func (s *Store) SetPrivacyScreen(v bool) error { return s.Set(KeyPrivacyScreen, v) }

func (s *Store) PrivacyScreenTimeout() int {
	v, _ := s.value(KeyPrivacyScreenTimeout).(int)
	return v
}

func (s *Store) SetPrivacyScreenTimeout(v int) error { return s.Set(KeyPrivacyScreenTimeout, v) }

func (s *Store) TimelineMaxWidth() int {
	v, _ := s.value(KeyTimelineMaxWidth).(int)
	return v
}

func (s *Store) SetTimelineMaxWidth(v int) error { return s.Set(KeyTimelineMaxWidth, v) }

func (s *Store) RoomListWidth() int {
	v, _ := s.value(KeyRoomListWidth).(int)
	return v
}

func (s *Store) SetRoomListWidth(v int) error { return s.Set(KeyRoomListWidth, v) }

func (s *Store) CommunityListWidth() int {
	v, _ := s.value(KeyCommunityListWidth).(int)
	return v
}

func (s *Store) SetCommunityListWidth(v int) error { return s.Set(KeyCommunityListWidth, v) }

func (s *Store) MobileMode() bool {
	v, _ := s.value(KeyMobileMode).(bool)
	return v
}

func (s *Store) SetMobileMode(v bool) error { return s.Set(KeyMobileMode, v) }

func (s *Store) FontSize() float64 {
	v, _ := s.value(KeyFontSize).(float64)
	return v
}

func (s *Store) SetFontSize(v float64) error { return s.Set(KeyFontSize, v) }

func (s *Store) Font() string {
	v, _ := s.value(KeyFont).(string)
	return v
}

func (s *Store) SetFont(v string) error { return s.Set(KeyFont, v) }

func (s *Store) Presence() Presence {
	v, _ := s.value(KeyPresence).(Presence)
	return v
}

func (s *Store) SetPresence(v Presence) error { return s.Set(KeyPresence, v) }

func (s *Store) Ringtone() string {
	v, _ := s.value(KeyRingtone).(string)
	return v
}

func (s *Store) SetRingtone(v string) error { return s.Set(KeyRingtone, v) }

func (s *Store) Microphone() string {
	v, _ := s.value(KeyMicrophone).(string)
	return v
}

func (s *Store) SetMicrophone(v string) error { return s.Set(KeyMicrophone, v) }

func (s *Store) Camera() string {
	v, _ := s.value(KeyCamera).(string)
	return v
}

func (s *Store) SetCamera(v string) error { return s.Set(KeyCamera, v) }

func (s *Store) CameraResolution() string {
	v, _ := s.value(KeyCameraResolution).(string)
	return v
}

func (s *Store) SetCameraResolution(v string) error { return s.Set(KeyCameraResolution, v) }

func (s *Store) CameraFrameRate() string {
	v, _ := s.value(KeyCameraFrameRate).(string)
	return v
}

func (s *Store) SetCameraFrameRate(v string) error { return s.Set(KeyCameraFrameRate, v) }

func (s *Store) ScreenShareFrameRate() int {
	v, _ := s.value(KeyScreenShareFrameRate).(int)
	return v
}

func (s *Store) SetScreenShareFrameRate(v int) error { return s.Set(KeyScreenShareFrameRate, v) }

func (s *Store) ScreenSharePiP() bool {
	v, _ := s.value(KeyScreenSharePiP).(bool)
	return v
}

func (s *Store) SetScreenSharePiP(v bool) error { return s.Set(KeyScreenSharePiP, v) }

func (s *Store) ScreenShareRemoteVideo() bool {
	v, _ := s.value(KeyScreenShareRemoteVideo).(bool)
	return v
}

func (s *Store) SetScreenShareRemoteVideo(v bool) error { return s.Set(KeyScreenShareRemoteVideo, v) }

func (s *Store) ScreenShareHideCursor() bool {
	v, _ := s.value(KeyScreenShareHideCursor).(bool)
	return v
}

func (s *Store) SetScreenShareHideCursor(v bool) error { return s.Set(KeyScreenShareHideCursor, v) }

func (s *Store) UseStunServer() bool {
	v, _ := s.value(KeyUseStunServer).(bool)
	return v
}

func (s *Store) SetUseStunServer(v bool) error { return s.Set(KeyUseStunServer, v) }

func (s *Store) OnlyShareKeysWithVerifiedUsers() bool {
	v, _ := s.value(KeyOnlyShareKeysWithVerifiedUsers).(bool)
	return v
}

func (s *Store) SetOnlyShareKeysWithVerifiedUsers(v bool) error {
	return s.Set(KeyOnlyShareKeysWithVerifiedUsers, v)
}

func (s *Store) ShareKeysWithTrustedUsers() bool {
	v, _ := s.value(KeyShareKeysWithTrustedUsers).(bool)
	return v
}

func (s *Store) SetShareKeysWithTrustedUsers(v bool) error {
	return s.Set(KeyShareKeysWithTrustedUsers, v)
}

func (s *Store) UseOnlineKeyBackup() bool {
	v, _ := s.value(KeyUseOnlineKeyBackup).(bool)
	return v
}

func (s *Store) SetUseOnlineKeyBackup(v bool) error { return s.Set(KeyUseOnlineKeyBackup, v) }

func (s *Store) UserID() string {
	v, _ := s.value(KeyUserID).(string)
	return v
}

func (s *Store) SetUserID(v string) error { return s.Set(KeyUserID, v) }

func (s *Store) AccessToken() string {
	v, _ := s.value(KeyAccessToken).(string)
	return v
}

func (s *Store) SetAccessToken(v string) error { return s.Set(KeyAccessToken, v) }

func (s *Store) DeviceID() string {
	v, _ := s.value(KeyDeviceID).(string)
	return v
}

func (s *Store) SetDeviceID(v string) error { return s.Set(KeyDeviceID, v) }

func (s *Store) Homeserver() string {
	v, _ := s.value(KeyHomeserver).(string)
	return v
}

func (s *Store) SetHomeserver(v string) error { return s.Set(KeyHomeserver, v) }

func (s *Store) DisableCertificateValidation() bool {
	v, _ := s.value(KeyDisableCertificateValidation).(bool)
	return v
}

func (s *Store) SetDisableCertificateValidation(v bool) error {
	return s.Set(KeyDisableCertificateValidation, v)
}

func (s *Store) HiddenTags() []string {
	v, _ := s.value(KeyHiddenTags).([]string)
	return v
}

func (s *Store) SetHiddenTags(v []string) error { return s.Set(KeyHiddenTags, v) }

func (s *Store) HiddenPins() []string {
	v, _ := s.value(KeyHiddenPins).([]string)
	return v
}

func (s *Store) SetHiddenPins(v []string) error { return s.Set(KeyHiddenPins, v) }

func (s *Store) CollapsedSpaces() [][]string {
	v, _ := s.value(KeyCollapsedSpaces).([][]string)
	return v
}

func (s *Store) SetCollapsedSpaces(v [][]string) error { return s.Set(KeyCollapsedSpaces, v) }

func (s *Store) ScaleFactor() float64 {
	v, _ := s.value(KeyScaleFactor).(float64)
	return v
}

func (s *Store) SetScaleFactor(v float64) error { return s.Set(KeyScaleFactor, v) }
