package enrichment

import (
	ua "github.com/mileusna/useragent"
)

// Device classes reported by DeviceDetector.
const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceBot     = "Bot"
	DeviceUnknown = "Unknown"
)

// DeviceDetector detects the device class from User-Agent strings.
type DeviceDetector struct{}

// NewDeviceDetector creates a new DeviceDetector.
func NewDeviceDetector() *DeviceDetector {
	return &DeviceDetector{}
}

// DetectDevice returns the device class of a User-Agent string.
func (d *DeviceDetector) DetectDevice(uaString string) string {
	if uaString == "" {
		return DeviceUnknown
	}

	parsed := ua.Parse(uaString)
	switch {
	case parsed.Bot:
		return DeviceBot
	case parsed.Tablet:
		return DeviceTablet
	case parsed.Mobile:
		return DeviceMobile
	case parsed.Desktop:
		return DeviceDesktop
	}
	return DeviceUnknown
}
