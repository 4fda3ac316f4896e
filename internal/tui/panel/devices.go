package panel

// DeviceProvider lists the hardware and fonts the panel offers as choices.
type DeviceProvider interface {
	Microphones() []string
	Cameras() []string
	Resolutions(camera string) []string
	FrameRates(camera, resolution string) []string
	Ringtones() []string
	Fonts() []string
}

// StaticDevices is a DeviceProvider backed by fixed lists. Every camera
// shares the same resolutions and frame rates.
type StaticDevices struct {
	MicrophoneList []string
	CameraList     []string
	ResolutionList []string
	FrameRateList  []string
	RingtoneList   []string
	FontList       []string
}

// DefaultDevices returns the lists used when no provider is configured.
func DefaultDevices() StaticDevices {
	return StaticDevices{
		MicrophoneList: []string{"Default"},
		CameraList:     []string{"Default"},
		ResolutionList: []string{"640x480", "1280x720", "1920x1080"},
		FrameRateList:  []string{"15", "24", "30", "60"},
		RingtoneList:   []string{"Mute", "Default"},
		FontList:       []string{"Sans Serif", "Serif", "Monospace", "Inter", "Noto Sans", "Noto Color Emoji"},
	}
}

func (d StaticDevices) Microphones() []string { return copyList(d.MicrophoneList) }
func (d StaticDevices) Cameras() []string     { return copyList(d.CameraList) }
func (d StaticDevices) Ringtones() []string   { return copyList(d.RingtoneList) }
func (d StaticDevices) Fonts() []string       { return copyList(d.FontList) }

func (d StaticDevices) Resolutions(camera string) []string {
	if camera == "" {
		return nil
	}
	return copyList(d.ResolutionList)
}

func (d StaticDevices) FrameRates(camera, resolution string) []string {
	if camera == "" || resolution == "" {
		return nil
	}
	return copyList(d.FrameRateList)
}

func copyList(list []string) []string {
	return append([]string(nil), list...)
}
