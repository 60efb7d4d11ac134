//go:build darwin && cgo

package darwin

import "github.com/keypoint/keypointer/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Pointer:     NewDevice(),
			Screens:     NewScreens(),
			Keys:        NewKeyTap(),
			Permissions: NewPermissions(),
		}, nil
	}
	platform.RequestPermissionsFunc = requestPermissions
}
