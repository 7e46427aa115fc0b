package catalog

import "github.com/allwaveav/boq-backend/internal/entity"

// defaultProducts is a small starter catalog used when no catalog file is
// configured. Production deployments ship their own catalog JSON.
var defaultProducts = []entity.CatalogProduct{
	{Brand: "Samsung", Model: "QM85C", Description: "85\" 4K UHD commercial display, 500 nit, 24/7 operation", Category: "Display", Price: 4200},
	{Brand: "LG", Model: "75UR640S", Description: "75\" 4K UHD commercial display with webOS signage", Category: "Display", Price: 2100},
	{Brand: "Chief", Model: "LTM1U", Description: "Fusion micro-adjustable tilt wall mount for 37\"-63\" displays", Category: "Mounts & Racks", Price: 280},
	{Brand: "Middle Atlantic", Model: "ERK-2725", Description: "27RU floor-standing equipment rack with rear door", Category: "Mounts & Racks", Price: 1150},
	{Brand: "Shure", Model: "MXA920", Description: "Ceiling array microphone with steerable coverage", Category: "Audio - Microphones", Price: 5100},
	{Brand: "Biamp", Model: "TesiraFORTE AVB VT4", Description: "Digital audio DSP with AEC and VoIP interface", Category: "Audio - DSP & Amplification", Price: 3800},
	{Brand: "QSC", Model: "AD-C6T", Description: "6.5\" two-way ceiling loudspeaker, 70/100V", Category: "Audio - Speakers", Price: 330},
	{Brand: "Poly", Model: "Studio X70", Description: "All-in-one 4K video bar for large rooms", Category: "Video Conferencing & Cameras", Price: 4500},
	{Brand: "Crestron", Model: "DM-NVX-360", Description: "AV-over-IP 4K60 encoder/decoder", Category: "Video Distribution & Switching", Price: 2300},
	{Brand: "Crestron", Model: "CP4", Description: "4-Series control processor", Category: "Control System & Environmental", Price: 1900},
	{Brand: "Extron", Model: "TLP Pro 1025T", Description: "10\" tabletop touch panel", Category: "Control System & Environmental", Price: 2600},
	{Brand: "Kramer", Model: "C-HM/HM-25", Description: "High-speed HDMI cable, 25 ft", Category: "Cabling & Infrastructure", Price: 45},
}
