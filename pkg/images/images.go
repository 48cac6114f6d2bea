package images

// Product photos live in the frontend's public folder and are matched by
// product name. Unmapped products get the layer photo rather than a broken
// image.
var productImages = map[string]string{
	"Layer":       "/layer.jpeg",
	"Broiler":     "/broiler.jpeg",
	"Cockerel":    "/cockerel.jpeg",
	"Guinea Fowl": "/guinea-fowl.jpeg",
	"Saso Layers": "/saso-layer.jpeg",
}

const defaultImage = "/layer.jpeg"

// ForProduct returns the image path for a product name.
func ForProduct(name string) string {
	if path, ok := productImages[name]; ok {
		return path
	}
	return defaultImage
}
