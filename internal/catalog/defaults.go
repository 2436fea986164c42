package catalog

// Defaults is the built-in collection used when neither a persisted slot nor
// the remote document provides any records.
func Defaults() []Input {
	return []Input{
		{ID: IDPtr(1), Name: "Hello World Logger", Link: DefaultLink, Code: "// Hello World\nconsole.log('Hello, world!');"},
		{ID: IDPtr(2), Name: "Random Greeter", Link: DefaultLink, Code: "// Greeter\nfunction greet(name){ return `Hi, ${name}!`; }"},
		{ID: IDPtr(3), Name: "Simple Counter", Link: DefaultLink, Code: "// Counter\nlet i=0; setInterval(()=>console.log(++i),1000);"},
		{ID: IDPtr(4), Name: "Utils: Round Number", Link: DefaultLink, Code: "// Round helper\nfunction r(n, p=2){ return Number(n.toFixed(p)); }"},
		{ID: IDPtr(5), Name: "DOM Highlighter", Link: DefaultLink, Code: "// Highlight elements\ndocument.querySelectorAll('*').forEach(el=>el.style.outline='1px solid rgba(255,0,120,0.3)');"},
		{ID: IDPtr(6), Name: "Time Logger", Link: DefaultLink, Code: "// Log time every 5s\nsetInterval(()=>console.log(new Date().toLocaleTimeString()),5000);"},
		{ID: IDPtr(7), Name: "UUID v4", Link: DefaultLink, Code: "// UUID v4 (small)\nfunction uuidv4(){return 'xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx'.replace(/[xy]/g,c=>{let r=Math.random()*16|0;let v=c=='x'?r:(r&0x3|0x8);return v.toString(16);});}"},
	}
}
