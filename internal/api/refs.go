package api

import (
	"strconv"
	"strings"
)

// #region image-references

type referenceGroup struct {
	keywords []string
	urls     []string
}

var referenceGroups = []referenceGroup{
	{[]string{"cat", "kitten", "feline"}, []string{
		"https://images.unsplash.com/photo-1574158622682-e40e69881006?w=400",
		"https://images.unsplash.com/photo-1611003229186-80e40cd54966?w=400",
	}},
	{[]string{"dog", "puppy", "canine"}, []string{
		"https://images.unsplash.com/photo-1518717758536-85ae29035b6d?w=400",
		"https://images.unsplash.com/photo-1552053831-71594a27632d?w=400",
	}},
	{[]string{"house", "home", "building"}, []string{
		"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=400",
		"https://images.unsplash.com/photo-1518780664697-55e3ad937233?w=400",
	}},
	{[]string{"tree", "forest", "nature"}, []string{
		"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=400",
		"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400",
	}},
	{[]string{"flower", "rose", "bloom"}, []string{
		"https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400",
		"https://images.unsplash.com/photo-1563206480-e0246ad0b14c?w=400",
	}},
	{[]string{"car", "vehicle", "automobile"}, []string{
		"https://images.unsplash.com/photo-1493238792000-8113da705763?w=400",
		"https://images.unsplash.com/photo-1502877338535-766e1452684a?w=400",
	}},
	{[]string{"face", "portrait", "person"}, []string{
		"https://images.unsplash.com/photo-1494790108755-2616c047016b?w=400",
		"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400",
	}},
	{[]string{"mountain", "landscape", "scenery"}, []string{
		"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400",
		"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=400",
	}},
}

// imageReferences suggests clickable reference photos for the drawing
// subject. Returns an empty string for subjects without a curated set.
func imageReferences(prompt string) string {
	lower := strings.ToLower(prompt)

	var urls []string
	for _, g := range referenceGroups {
		if containsAny(lower, g.keywords) {
			urls = g.urls
			break
		}
	}
	if len(urls) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("📷 <strong>Reference Images:</strong><br>")
	for i, u := range urls {
		if i == 2 {
			break
		}
		b.WriteString("• <a href='javascript:void(0)' onclick=\"document.getElementById('imageUrl').value='" + u +
			"'; loadReference();\">Reference " + strconv.Itoa(i+1) + "</a> - Click to load automatically<br>")
	}
	b.WriteString("<br>💡 <strong>Tip:</strong> Load a reference image above your canvas for better accuracy!")
	return b.String()
}

// #endregion

// #region tool-guide

var drawingWords = []string{"draw", "sketch", "paint", "create", "make"}
var toolWords = []string{"tool", "brush", "pencil", "eraser", "problem", "issue", "help", "not working"}

// toolGuide returns the full tool walkthrough for drawing requests, a
// focused troubleshooting sheet for tool complaints, and nothing
// otherwise.
func toolGuide(prompt string) string {
	lower := strings.ToLower(prompt)

	if containsAny(lower, drawingWords) {
		return `🔧 <strong>Complete Tool Guide:</strong><br>

<strong>📝 Drawing Tools:</strong><br>
• <strong>Pencil:</strong> Click tool → Choose brush size → Click & drag on canvas<br>
• <strong>Eraser:</strong> Select eraser → Adjust size → Draw over areas to remove<br>
• <strong>Fill:</strong> Select fill tool → Click inside enclosed shapes to fill with color<br>
• <strong>Eyedropper:</strong> Click tool → Click on canvas to pick existing colors<br>

<strong>🔷 Shape Tools:</strong><br>
• <strong>Rectangle/Circle/Triangle:</strong> Select shape → Click & drag from corner to corner<br>
• <strong>Line:</strong> Click start point → Drag to end point → Release<br>
• <strong>Star/Arrow:</strong> Click center → Drag outward to set size<br>

<strong>🎨 Essential Settings:</strong><br>
• <strong>Brush Size:</strong> Use slider (1-50px) or keyboard [ ] keys<br>
• <strong>Colors:</strong> Click color picker or use preset color squares<br>
• <strong>Shape Fill:</strong> Check "Fill shapes" box for solid shapes<br>
• <strong>Opacity:</strong> Adjust shape opacity slider for transparency<br>

<strong>📚 Layer System:</strong><br>
• <strong>Add Layer:</strong> Click "+ Add Layer" button<br>
• <strong>Switch Layers:</strong> Click layer name to make it active<br>
• <strong>Hide/Show:</strong> Check/uncheck layer visibility boxes<br>

<strong>⚡ Quick Fixes:</strong><br>
✅ <strong>Tool not working:</strong> Check if correct tool is highlighted in blue<br>
✅ <strong>Can't draw:</strong> Click on canvas first, check brush size > 1<br>
✅ <strong>Wrong color:</strong> Verify color picker shows desired color<br>
✅ <strong>Undo/Redo:</strong> Use Ctrl+Z / Ctrl+Y or the arrow buttons`
	}

	if containsAny(lower, toolWords) {
		return `🛠️ <strong>Tool Troubleshooting:</strong><br>

<strong>Common Issues & Solutions:</strong><br>

🔹 <strong>Pencil Tool Issues:</strong><br>
• Tool not selected? → Click "Pencil" button (should turn blue)<br>
• Brush too small? → Increase brush size slider<br>
• Canvas not focused? → Click once on the white canvas area<br>

🔹 <strong>Shape Tool Problems:</strong><br>
• Not drawing shapes? → Click and DRAG, don't just click<br>
• Shapes not filled? → Check "Fill shapes" checkbox<br>
• Can't see shape? → Check opacity setting and color<br>

🔹 <strong>Color Issues:</strong><br>
• Color not changing? → Click color picker square to choose new color<br>
• Eyedropper not working? → Select eyedropper tool, then click on canvas<br>
• Fill not working? → Make sure area is completely enclosed<br>

🔹 <strong>Canvas Problems:</strong><br>
• Can't draw anywhere? → Try refreshing page<br>
• Canvas appears frozen? → Check browser supports HTML5<br>
• Touch not working? → Try mouse/trackpad instead<br>

<strong>📱 Mobile Users:</strong><br>
• Use single finger touches<br>
• Avoid scrolling while drawing<br>
• Try landscape orientation for better control<br>

<strong>⌨️ Keyboard Shortcuts:</strong><br>
• P = Pencil, E = Eraser, F = Fill, R = Rectangle, C = Circle<br>
• [ ] = Decrease/Increase brush size<br>
• Ctrl+Z = Undo, Ctrl+Y = Redo<br>
• 1-5 = Quick color selection`
	}

	return ""
}

// #endregion

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
