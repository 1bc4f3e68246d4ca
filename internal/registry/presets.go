package registry

func init() {
	Register(Preset{
		ID:             "colt-m1911",
		Title:          "Colt M1911",
		MuzzleVelocity: 253,
		ShotRate:       0.5,
	})
	Register(Preset{
		ID:             "musket",
		Title:          "Flintlock Musket",
		MuzzleVelocity: 450,
		ShotRate:       0.1,
	})
	Register(Preset{
		ID:             "nerf",
		Title:          "Foam Dart Blaster",
		MuzzleVelocity: 20,
		ShotRate:       0.9,
	})
}
