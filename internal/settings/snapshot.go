package settings

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Snapshot is the serialized form of a profile used by show, export and
// import.
type Snapshot struct {
	Appearance    AppearanceSection    `toml:"appearance" json:"appearance" yaml:"appearance"`
	Timeline      TimelineSection      `toml:"timeline" json:"timeline" yaml:"timeline"`
	Sidebar       SidebarSection       `toml:"sidebar" json:"sidebar" yaml:"sidebar"`
	Window        WindowSection        `toml:"window" json:"window" yaml:"window"`
	Notifications NotificationsSection `toml:"notifications" json:"notifications" yaml:"notifications"`
	Voip          VoipSection          `toml:"voip" json:"voip" yaml:"voip"`
	Encryption    EncryptionSection    `toml:"encryption" json:"encryption" yaml:"encryption"`
	Auth          AuthSection          `toml:"auth" json:"auth" yaml:"auth"`
	State         StateSection         `toml:"state" json:"state" yaml:"state"`
}

type AppearanceSection struct {
	Theme         string  `toml:"theme" json:"theme" yaml:"theme" validate:"omitempty,oneof=light dark system"`
	FontSize      float64 `toml:"font_size" json:"font_size" yaml:"font_size" validate:"gte=6,lte=40"`
	Font          string  `toml:"font" json:"font" yaml:"font"`
	EmojiFont     string  `toml:"emoji_font" json:"emoji_font" yaml:"emoji_font"`
	ScaleFactor   float64 `toml:"scale_factor" json:"scale_factor" yaml:"scale_factor" validate:"gte=1,lte=3"`
	AvatarCircles bool    `toml:"avatar_circles" json:"avatar_circles" yaml:"avatar_circles"`
	UseIdenticon  bool    `toml:"use_identicon" json:"use_identicon" yaml:"use_identicon"`
	MobileMode    bool    `toml:"mobile_mode" json:"mobile_mode" yaml:"mobile_mode"`
}

type TimelineSection struct {
	MessageHoverHighlight    bool `toml:"message_hover_highlight" json:"message_hover_highlight" yaml:"message_hover_highlight"`
	EnlargeEmojiOnlyMessages bool `toml:"enlarge_emoji_only_msg" json:"enlarge_emoji_only_msg" yaml:"enlarge_emoji_only_msg"`
	Buttons                  bool `toml:"buttons" json:"buttons" yaml:"buttons"`
	Markdown                 bool `toml:"markdown" json:"markdown" yaml:"markdown"`
	AnimateImagesOnHover     bool `toml:"animate_images_on_hover" json:"animate_images_on_hover" yaml:"animate_images_on_hover"`
	TypingNotifications      bool `toml:"typing_notifications" json:"typing_notifications" yaml:"typing_notifications"`
	ReadReceipts             bool `toml:"read_receipts" json:"read_receipts" yaml:"read_receipts"`
	MaxWidth                 int  `toml:"max_width" json:"max_width" yaml:"max_width" validate:"gte=0,lte=65535"`
}

type SidebarSection struct {
	GroupView          bool       `toml:"group_view" json:"group_view" yaml:"group_view"`
	SortByImportance   bool       `toml:"sort_by_importance" json:"sort_by_importance" yaml:"sort_by_importance"`
	DecryptSidebar     bool       `toml:"decrypt_sidebar" json:"decrypt_sidebar" yaml:"decrypt_sidebar"`
	RoomListWidth      int        `toml:"room_list_width" json:"room_list_width" yaml:"room_list_width" validate:"gte=-1,lte=65535"`
	CommunityListWidth int        `toml:"community_list_width" json:"community_list_width" yaml:"community_list_width" validate:"gte=-1,lte=65535"`
	HiddenTags         []string   `toml:"hidden_tags" json:"hidden_tags" yaml:"hidden_tags"`
	HiddenPins         []string   `toml:"hidden_pins" json:"hidden_pins" yaml:"hidden_pins"`
	CollapsedSpaces    [][]string `toml:"collapsed_spaces" json:"collapsed_spaces" yaml:"collapsed_spaces"`
}

type WindowSection struct {
	Tray                 bool `toml:"tray" json:"tray" yaml:"tray"`
	StartInTray          bool `toml:"start_in_tray" json:"start_in_tray" yaml:"start_in_tray"`
	PrivacyScreen        bool `toml:"privacy_screen" json:"privacy_screen" yaml:"privacy_screen"`
	PrivacyScreenTimeout int  `toml:"privacy_screen_timeout" json:"privacy_screen_timeout" yaml:"privacy_screen_timeout" validate:"gte=0,lte=3600"`
}

type NotificationsSection struct {
	Desktop bool `toml:"desktop" json:"desktop" yaml:"desktop"`
	Alert   bool `toml:"alert" json:"alert" yaml:"alert"`
}

type VoipSection struct {
	Ringtone               string `toml:"ringtone" json:"ringtone" yaml:"ringtone"`
	Microphone             string `toml:"microphone" json:"microphone" yaml:"microphone"`
	Camera                 string `toml:"camera" json:"camera" yaml:"camera"`
	CameraResolution       string `toml:"camera_resolution" json:"camera_resolution" yaml:"camera_resolution"`
	CameraFrameRate        string `toml:"camera_frame_rate" json:"camera_frame_rate" yaml:"camera_frame_rate"`
	ScreenShareFrameRate   int    `toml:"screen_share_frame_rate" json:"screen_share_frame_rate" yaml:"screen_share_frame_rate" validate:"gte=1,lte=30"`
	ScreenSharePiP         bool   `toml:"screen_share_pip" json:"screen_share_pip" yaml:"screen_share_pip"`
	ScreenShareRemoteVideo bool   `toml:"screen_share_remote_video" json:"screen_share_remote_video" yaml:"screen_share_remote_video"`
	ScreenShareHideCursor  bool   `toml:"screen_share_hide_cursor" json:"screen_share_hide_cursor" yaml:"screen_share_hide_cursor"`
	UseStunServer          bool   `toml:"use_stun_server" json:"use_stun_server" yaml:"use_stun_server"`
}

type EncryptionSection struct {
	OnlyShareKeysWithVerifiedUsers bool `toml:"only_share_keys_with_verified_users" json:"only_share_keys_with_verified_users" yaml:"only_share_keys_with_verified_users"`
	ShareKeysWithTrustedUsers      bool `toml:"share_keys_with_trusted_users" json:"share_keys_with_trusted_users" yaml:"share_keys_with_trusted_users"`
	OnlineKeyBackup                bool `toml:"online_key_backup" json:"online_key_backup" yaml:"online_key_backup"`
}

type AuthSection struct {
	UserID                       string `toml:"user_id" json:"user_id" yaml:"user_id"`
	AccessToken                  string `toml:"access_token" json:"access_token" yaml:"access_token"`
	DeviceID                     string `toml:"device_id" json:"device_id" yaml:"device_id"`
	Homeserver                   string `toml:"home_server" json:"home_server" yaml:"home_server"`
	DisableCertificateValidation bool   `toml:"disable_certificate_validation" json:"disable_certificate_validation" yaml:"disable_certificate_validation"`
}

type StateSection struct {
	Profile  string   `toml:"profile" json:"profile" yaml:"profile"`
	Presence Presence `toml:"presence" json:"presence" yaml:"presence" validate:"gte=0,lte=3"`
}

type binding struct {
	key string
	ptr any
}

func (s *Snapshot) bindings() []binding {
	return []binding{
		{KeyTheme, &s.Appearance.Theme},
		{KeyFontSize, &s.Appearance.FontSize},
		{KeyFont, &s.Appearance.Font},
		{KeyEmojiFont, &s.Appearance.EmojiFont},
		{KeyScaleFactor, &s.Appearance.ScaleFactor},
		{KeyAvatarCircles, &s.Appearance.AvatarCircles},
		{KeyUseIdenticon, &s.Appearance.UseIdenticon},
		{KeyMobileMode, &s.Appearance.MobileMode},
		{KeyMessageHoverHighlight, &s.Timeline.MessageHoverHighlight},
		{KeyEnlargeEmojiOnlyMessages, &s.Timeline.EnlargeEmojiOnlyMessages},
		{KeyButtonsInTimeline, &s.Timeline.Buttons},
		{KeyMarkdown, &s.Timeline.Markdown},
		{KeyAnimateImagesOnHover, &s.Timeline.AnimateImagesOnHover},
		{KeyTypingNotifications, &s.Timeline.TypingNotifications},
		{KeyReadReceipts, &s.Timeline.ReadReceipts},
		{KeyTimelineMaxWidth, &s.Timeline.MaxWidth},
		{KeyGroupView, &s.Sidebar.GroupView},
		{KeySortByImportance, &s.Sidebar.SortByImportance},
		{KeyDecryptSidebar, &s.Sidebar.DecryptSidebar},
		{KeyRoomListWidth, &s.Sidebar.RoomListWidth},
		{KeyCommunityListWidth, &s.Sidebar.CommunityListWidth},
		{KeyHiddenTags, &s.Sidebar.HiddenTags},
		{KeyHiddenPins, &s.Sidebar.HiddenPins},
		{KeyCollapsedSpaces, &s.Sidebar.CollapsedSpaces},
		{KeyTray, &s.Window.Tray},
		{KeyStartInTray, &s.Window.StartInTray},
		{KeyPrivacyScreen, &s.Window.PrivacyScreen},
		{KeyPrivacyScreenTimeout, &s.Window.PrivacyScreenTimeout},
		{KeyDesktopNotifications, &s.Notifications.Desktop},
		{KeyAlertOnNotification, &s.Notifications.Alert},
		{KeyRingtone, &s.Voip.Ringtone},
		{KeyMicrophone, &s.Voip.Microphone},
		{KeyCamera, &s.Voip.Camera},
		{KeyCameraResolution, &s.Voip.CameraResolution},
		{KeyCameraFrameRate, &s.Voip.CameraFrameRate},
		{KeyScreenShareFrameRate, &s.Voip.ScreenShareFrameRate},
		{KeyScreenSharePiP, &s.Voip.ScreenSharePiP},
		{KeyScreenShareRemoteVideo, &s.Voip.ScreenShareRemoteVideo},
		{KeyScreenShareHideCursor, &s.Voip.ScreenShareHideCursor},
		{KeyUseStunServer, &s.Voip.UseStunServer},
		{KeyOnlyShareKeysWithVerifiedUsers, &s.Encryption.OnlyShareKeysWithVerifiedUsers},
		{KeyShareKeysWithTrustedUsers, &s.Encryption.ShareKeysWithTrustedUsers},
		{KeyUseOnlineKeyBackup, &s.Encryption.OnlineKeyBackup},
		{KeyUserID, &s.Auth.UserID},
		{KeyAccessToken, &s.Auth.AccessToken},
		{KeyDeviceID, &s.Auth.DeviceID},
		{KeyHomeserver, &s.Auth.Homeserver},
		{KeyDisableCertificateValidation, &s.Auth.DisableCertificateValidation},
		{KeyProfile, &s.State.Profile},
		{KeyPresence, &s.State.Presence},
	}
}

func (b binding) load(v any) {
	switch p := b.ptr.(type) {
	case *bool:
		*p, _ = v.(bool)
	case *int:
		*p, _ = v.(int)
	case *float64:
		*p, _ = v.(float64)
	case *string:
		*p, _ = v.(string)
	case *Presence:
		*p, _ = v.(Presence)
	case *[]string:
		*p, _ = v.([]string)
	case *[][]string:
		*p, _ = v.([][]string)
	}
}

func (b binding) value() any {
	switch p := b.ptr.(type) {
	case *bool:
		return *p
	case *int:
		return *p
	case *float64:
		return *p
	case *string:
		return *p
	case *Presence:
		return *p
	case *[]string:
		return *p
	case *[][]string:
		return *p
	}
	return nil
}

// DefaultSnapshot returns a snapshot holding every field default.
func DefaultSnapshot() Snapshot {
	var snap Snapshot
	for _, b := range snap.bindings() {
		b.load(clone(registry[b.key].Default))
	}
	return snap
}

// Snapshot returns the raw cached values of every stored field.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	for _, b := range snap.bindings() {
		b.load(s.value(b.key))
	}
	return snap
}

// Redacted returns a copy with sensitive values masked.
func (snap Snapshot) Redacted() Snapshot {
	out := snap
	for _, b := range out.bindings() {
		if f := registry[b.key]; f.Sensitive {
			b.load(Format(f, b.value()))
		}
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the snapshot's value ranges.
func (snap Snapshot) Validate() error {
	if err := validate.Struct(snap); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("%w: %s failed %s=%s (got %v)", ErrInvalidValue, fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
			}
			return errors.Join(msgs...)
		}
		return err
	}
	return nil
}

// Apply validates snap and sets every field that differs from the cache.
// The profile entry is ignored so snapshots can move between profiles.
// Fields are applied in order; the first failing write stops the import.
func (s *Store) Apply(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	for _, b := range snap.bindings() {
		if b.key == KeyProfile {
			continue
		}
		if err := s.Set(b.key, b.value()); err != nil {
			return fmt.Errorf("apply snapshot: %w", err)
		}
	}
	return nil
}
