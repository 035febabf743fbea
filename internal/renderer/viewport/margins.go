package viewport

// MarginConfig holds scroll margin configuration.
type MarginConfig struct {
	Top    int // Rows to keep above cursor
	Bottom int // Rows to keep below cursor
	Left   int // Columns to keep left of cursor
	Right  int // Columns to keep right of cursor
}

// SetMargins sets the scroll margins.
func (v *Viewport) SetMargins(m MarginConfig) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.marginTop = m.Top
	v.marginBottom = m.Bottom
	v.marginLeft = m.Left
	v.marginRight = m.Right
}

// maxMarginRatio limits margins to 1/3 of the viewport dimension.
const maxMarginRatio = 3

// EffectiveMargins returns margins adjusted for the viewport size.
func (v *Viewport) EffectiveMargins() MarginConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.effectiveMargins()
}

// effectiveMargins returns clamped margins (internal, no lock).
func (v *Viewport) effectiveMargins() MarginConfig {
	vertical := v.height / maxMarginRatio
	horizontal := v.width / maxMarginRatio
	return MarginConfig{
		Top:    min(max(v.marginTop, 0), vertical),
		Bottom: min(max(v.marginBottom, 0), vertical),
		Left:   min(max(v.marginLeft, 0), horizontal),
		Right:  min(max(v.marginRight, 0), horizontal),
	}
}
