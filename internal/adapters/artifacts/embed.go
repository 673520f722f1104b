package artifacts

import "embed"

// Frozen artifacts shipped with the binary: the feature schema, the two
// scaler parameter sets, the classifier coefficients, the type chart, and
// the dex dataset. They were frozen together at model-training time and are
// cross-validated against each other in Load.
//
//go:embed data/*.json
var dataFS embed.FS
