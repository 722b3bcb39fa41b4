package css

// properties lists every CSS property the runtime addresses by number. A
// property's id is its 1-based position, so entries are append-only.
var properties = [...]property{
	{"top", "auto"},
	{"left", "auto"},
	{"right", "auto"},
	{"bottom", "auto"},
	{"position", "relative"},
	{"box-sizing", "auto"},
	{"background-color", "transparent"},
	{"border-left-color", "black"},
	{"border-right-color", "black"},
	{"border-top-color", "black"},
	{"border-bottom-color", "black"},
	{"border-radius", "0px"},
	{"border-top-left-radius", "0px"},
	{"border-bottom-left-radius", "0px"},
	{"border-top-right-radius", "0px"},
	{"border-bottom-right-radius", "0px"},
	{"border-width", "0px"},
	{"border-left-width", "0px"},
	{"border-right-width", "0px"},
	{"border-top-width", "0px"},
	{"border-bottom-width", "0px"},
	{"color", "black"},
	{"opacity", "1"},
	{"display", "auto"},
	{"overflow", "hidden"},
	{"height", "auto"},
	{"width", "auto"},
	{"max-width", "auto"},
	{"min-width", "auto"},
	{"max-height", "auto"},
	{"min-height", "auto"},
	{"padding", "0px"},
	{"padding-left", "0px"},
	{"padding-right", "0px"},
	{"padding-top", "0px"},
	{"padding-bottom", "0px"},
	{"margin", "0px"},
	{"margin-left", "0px"},
	{"margin-right", "0px"},
	{"margin-top", "0px"},
	{"margin-bottom", "0px"},
	{"white-space", "normal"},
	{"letter-spacing", "0px"},
	{"text-align", "start"},
	{"line-height", ""},
	{"text-overflow", "clip"},
	{"font-size", "medium"},
	{"font-weight", "normal"},
	{"flex", "0"},
	{"flex-grow", "0"},
	{"flex-shrink", "1"},
	{"flex-basis", "auto"},
	{"flex-direction", "row"},
	{"flex-wrap", "nowrap"},
	{"align-items", "stretch"},
	{"align-self", "stretch"},
	{"align-content", "stretch"},
	{"justify-content", "stretch"},
	{"background", "transparent, transparent"},
	{"border-color", "black"},
	{"font-family", ""},
	{"font-style", "normal"},
	{"transform", ""},
	{"animation", ""},
	{"animation-name", ""},
	{"animation-duration", ""},
	{"animation-timing-function", "linear"},
	{"animation-delay", "0s"},
	{"animation-iteration-count", "1"},
	{"animation-direction", "normal"},
	{"animation-fill-mode", "none"},
	{"animation-play-state", "running"},
	{"line-spacing", "0px"},
	{"border-style", "solid"},
	{"order", "0"},
	{"box-shadow", ""},
	{"transform-origin", ""},
	{"linear-orientation", "vertical"},
	{"linear-weight-sum", "0"},
	{"linear-weight", "0"},
	{"linear-gravity", "none"},
	{"linear-layout-gravity", "none"},
	{"layout-animation-create-duration", "0s"},
	{"layout-animation-create-timing-function", "linear"},
	{"layout-animation-create-delay", "0s"},
	{"layout-animation-create-property", "opacity"},
	{"layout-animation-delete-duration", "0s"},
	{"layout-animation-delete-timing-function", "linear"},
	{"layout-animation-delete-delay", "0s"},
	{"layout-animation-delete-property", "opacity"},
	{"layout-animation-update-duration", "0s"},
	{"layout-animation-update-timing-function", "linear"},
	{"layout-animation-update-delay", "0s"},
	{"adapt-font-size", "0"},
	{"aspect-ratio", ""},
	{"text-decoration", ""},
	{"text-shadow", ""},
	{"background-image", ""},
	{"background-position", ""},
	{"background-origin", "border-box"},
	{"background-repeat", "no-repeat"},
	{"background-size", ""},
	{"border", ""},
	{"visibility", "visible"},
	{"border-right", ""},
	{"border-left", ""},
	{"border-top", ""},
	{"border-bottom", ""},
	{"transition", ""},
	{"transition-property", ""},
	{"transition-duration", ""},
	{"transition-delay", ""},
	{"transition-timing-function", ""},
	{"content", ""},
	{"border-left-style", ""},
	{"border-right-style", ""},
	{"border-top-style", ""},
	{"border-bottom-style", ""},
	{"implicit-animation", "true"},
	{"overflow-x", "hidden"},
	{"overflow-y", "hidden"},
	{"word-break", "normal"},
	{"background-clip", "border-box"},
	{"outline", "medium none black"},
	{"outline-color", "black"},
	{"outline-style", "black"},
	{"outline-width", "medium"},
	{"vertical-align", "default"},
	{"caret-color", "auto"},
	{"direction", "normal"},
	{"relative-id", "-1"},
	{"relative-align-top", "-1"},
	{"relative-align-right", "-1"},
	{"relative-align-bottom", "-1"},
	{"relative-align-left", "-1"},
	{"relative-top-of", "-1"},
	{"relative-right-of", "-1"},
	{"relative-bottom-of", "-1"},
	{"relative-left-of", "-1"},
	{"relative-layout-once", "true"},
	{"relative-center", "none"},
	{"enter-transition-name", ""},
	{"exit-transition-name", ""},
	{"pause-transition-name", ""},
	{"resume-transition-name", ""},
	{"flex-flow", "row nowrap"},
	{"z-index", "0"},
	{"text-decoration-color", "black"},
	{"linear-cross-gravity", "none"},
	{"margin-inline-start", "0px"},
	{"margin-inline-end", "0px"},
	{"padding-inline-start", "0px"},
	{"padding-inline-end", "0px"},
	{"border-inline-start-color", "black"},
	{"border-inline-end-color", "black"},
	{"border-inline-start-width", "0px"},
	{"border-inline-end-width", "0px"},
	{"border-inline-start-style", ""},
	{"border-inline-end-style", ""},
	{"border-start-start-radius", "0px"},
	{"border-end-start-radius", "0px"},
	{"border-start-end-radius", "0px"},
	{"border-end-end-radius", "0px"},
	{"relative-align-inline-start", "-1"},
	{"relative-align-inline-end", "-1"},
	{"relative-inline-start-of", "-1"},
	{"relative-inline-end-of", "-1"},
	{"inset-inline-start", "0px"},
	{"inset-inline-end", "0px"},
	{"mask-image", ""},
	{"grid-template-columns", ""},
	{"grid-template-rows", ""},
	{"grid-auto-columns", ""},
	{"grid-auto-rows", ""},
	{"grid-column-span", ""},
	{"grid-row-span", ""},
	{"grid-column-start", ""},
	{"grid-column-end", ""},
	{"grid-row-start", ""},
	{"grid-row-end", ""},
	{"grid-column-gap", ""},
	{"grid-row-gap", ""},
	{"justify-items", "stretch"},
	{"justify-self", "auto"},
	{"grid-auto-flow", "row"},
	{"filter", ""},
	{"list-main-axis-gap", "0px"},
	{"list-cross-axis-gap", "0px"},
	{"linear-direction", "column"},
	{"perspective", "none"},
	{"cursor", "default"},
	{"text-indent", "0px"},
	{"clip-path", ""},
	{"text-stroke", "0px transparent"},
	{"text-stroke-width", "0px"},
	{"text-stroke-color", "transparent"},
	{"-x-auto-font-size", "false"},
	{"-x-auto-font-size-preset-sizes", ""},
}
