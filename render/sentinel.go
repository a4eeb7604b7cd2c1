package render

// Dunno is returned whenever a render produces no usable rows. Every
// non-data path funnels through this single constant.
const Dunno = `¯\_(ツ)_/¯`
